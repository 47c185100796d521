package fulfillment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// UseCaseInterface define a interface para o use case
type UseCaseInterface interface {
	ConfirmOrder(ctx context.Context, scannedOrderID, currentUserID string) (*Confirmation, error)
}

// Handler contém os handlers HTTP da confirmação de pedidos
type Handler struct {
	useCase UseCaseInterface
	tracer  trace.Tracer
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase UseCaseInterface, tracer trace.Tracer) *Handler {
	return &Handler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// ConfirmOrder confirma a retirada de um pedido a partir do QR escaneado
func (h *Handler) ConfirmOrder(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "confirm_order")
	defer span.End()

	customerID := c.GetHeader("X-Customer-ID")
	orderID := c.Param("id")

	span.SetAttributes(
		attribute.String("order_id", orderID),
		attribute.String("customer_id", customerID),
	)

	confirmation, err := h.useCase.ConfirmOrder(ctx, orderID, customerID)
	if err != nil {
		span.RecordError(err)
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": confirmation.OrderID,
		"idDueno":  confirmation.OwnerID,
		"total":    confirmation.Total,
		"message":  "Order confirmed successfully",
	})
}

// statusFromError mapeia a taxonomia de erros da confirmação para HTTP
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound, "order_not_found"
	case errors.Is(err, ErrOwnershipMismatch):
		return http.StatusForbidden, "ownership_mismatch"
	case errors.Is(err, ErrMalformedOrder):
		return http.StatusUnprocessableEntity, "malformed_order"
	case errors.Is(err, ErrAlreadyConfirmed):
		return http.StatusConflict, "already_confirmed"
	case docstore.IsTransient(err):
		return http.StatusServiceUnavailable, "transient"
	}
	return http.StatusInternalServerError, "internal"
}
