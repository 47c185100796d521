package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Handler contém os handlers HTTP do catálogo
type Handler struct {
	useCase *UseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *UseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// ListStores lista as lojas com seus produtos; ?q= filtra pelo nome do local
func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.useCase.SearchStores(c.Request.Context(), c.Query("q"))
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// GetStore retorna uma loja com seu inventário
func (h *Handler) GetStore(c *gin.Context) {
	store, err := h.useCase.GetStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, store)
}

// ListProducts lista o inventário da loja; ?q= filtra pelo nome do produto
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.useCase.SearchProducts(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		status, code := statusFromError(err)
		c.JSON(status, gin.H{"code": code, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"productos": products})
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrStoreNotFound):
		return http.StatusNotFound, "store_not_found"
	case docstore.IsTransient(err):
		return http.StatusServiceUnavailable, "transient"
	}
	return http.StatusInternalServerError, "internal"
}
