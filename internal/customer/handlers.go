package customer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Handler contém os handlers HTTP de perfil e histórico
type Handler struct {
	useCase *UseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// GetProfile retorna o perfil do cliente autenticado
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.useCase.GetProfile(c.Request.Context(), c.GetHeader("X-Customer-ID"))
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile atualiza o perfil do cliente autenticado
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_request", "error": err.Error()})
		return
	}

	err := h.useCase.UpdateProfile(c.Request.Context(), c.GetHeader("X-Customer-ID"), update)
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// ListOrders retorna o histórico de pedidos do cliente autenticado
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.useCase.ListOrders(c.Request.Context(), c.GetHeader("X-Customer-ID"))
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder retorna um pedido do cliente autenticado
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.useCase.GetOrder(c.Request.Context(), c.GetHeader("X-Customer-ID"), c.Param("id"))
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, ErrCustomerNotFound):
		return http.StatusNotFound, "customer_not_found"
	case errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound, "order_not_found"
	case docstore.IsTransient(err):
		return http.StatusServiceUnavailable, "transient"
	}
	return http.StatusInternalServerError, "internal"
}
