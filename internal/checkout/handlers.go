package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mercadobarrio/storefront/internal/cart"
	"github.com/mercadobarrio/storefront/internal/docstore"
)

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	SubmitOrder(ctx context.Context, c *cart.Cart, customerID, paymentMethod string) (string, error)
}

// Handler contém os handlers HTTP do checkout
type Handler struct {
	useCase UseCaseInterface
	carts   *cart.Manager
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface, carts *cart.Manager, tracer trace.Tracer) *Handler {
	return &Handler{
		useCase: useCase,
		carts:   carts,
		tracer:  tracer,
	}
}

// CheckoutRequest representa a requisição de checkout
type CheckoutRequest struct {
	PaymentMethod string `json:"metodoPago" binding:"required"`
}

// Checkout submete o carrinho da sessão como um pedido
func (h *Handler) Checkout(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "submit_order")
	defer span.End()

	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "not_authenticated", "error": ErrNotAuthenticated.Error()})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_request", "error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.String("customer_id", customerID),
		attribute.String("payment_method", req.PaymentMethod),
	)

	orderID, err := h.useCase.SubmitOrder(ctx, h.carts.Cart(customerID), customerID, req.PaymentMethod)
	if err != nil {
		span.RecordError(err)
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}

	span.SetAttributes(attribute.String("order_id", orderID))
	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"message":  "Order placed successfully",
	})
}

// statusFromError mapeia a taxonomia de erros do checkout para HTTP
// Os códigos são estáveis para o cliente; nunca se compara mensagem
func statusFromError(err error) (int, string) {
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest, "empty_cart"
	case errors.Is(err, ErrMixedCart):
		return http.StatusBadRequest, "mixed_cart"
	case errors.Is(err, ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "invalid_payment_method"
	case errors.Is(err, ErrInventoryNotFound):
		return http.StatusNotFound, "inventory_not_found"
	case errors.As(err, &stockErr):
		return http.StatusConflict, "insufficient_stock"
	case docstore.IsTransient(err):
		return http.StatusServiceUnavailable, "transient"
	}
	return http.StatusInternalServerError, "internal"
}
