package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler contém os handlers HTTP do carrinho
type Handler struct {
	carts *Manager
}

// NewHandler cria uma nova instância de Handler
func NewHandler(carts *Manager) *Handler {
	return &Handler{
		carts: carts,
	}
}

// UpdateQuantityRequest representa a requisição para alterar a quantidade
type UpdateQuantityRequest struct {
	Quantity int `json:"cantidad"`
}

// GetCart retorna os itens e o total do carrinho da sessão
func (h *Handler) GetCart(c *gin.Context) {
	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "not_authenticated", "error": "missing customer id"})
		return
	}

	cart := h.carts.Cart(customerID)
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Lines(),
		"total": cart.Total(),
	})
}

// AddItem adiciona um produto ao carrinho
// A operação sempre sucede; o estoque só é validado no checkout
func (h *Handler) AddItem(c *gin.Context) {
	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "not_authenticated", "error": "missing customer id"})
		return
	}

	var product Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_request", "error": err.Error()})
		return
	}

	h.carts.Cart(customerID).AddLine(product)
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// UpdateItem sobrescreve a quantidade de um item do carrinho
func (h *Handler) UpdateItem(c *gin.Context) {
	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "not_authenticated", "error": "missing customer id"})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_request", "error": err.Error()})
		return
	}

	h.carts.Cart(customerID).SetQuantity(c.Param("productId"), req.Quantity)
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// RemoveItem remove um item do carrinho
func (h *Handler) RemoveItem(c *gin.Context) {
	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "not_authenticated", "error": "missing customer id"})
		return
	}

	h.carts.Cart(customerID).RemoveLine(c.Param("productId"))
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// ClearCart esvazia o carrinho da sessão
func (h *Handler) ClearCart(c *gin.Context) {
	customerID := c.GetHeader("X-Customer-ID")
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "not_authenticated", "error": "missing customer id"})
		return
	}

	h.carts.Cart(customerID).Clear()
	c.JSON(http.StatusOK, gin.H{"result": "success"})
}
