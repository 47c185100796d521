package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart indica um checkout sobre carrinho vazio
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrNotAuthenticated indica que não há cliente autenticado na sessão
	ErrNotAuthenticated = errors.New("no authenticated customer")

	// ErrMixedCart indica itens de mais de uma loja no mesmo carrinho
	ErrMixedCart = errors.New("cart references products from more than one store")

	// ErrInvalidPaymentMethod indica um método de pagamento desconhecido
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInventoryNotFound indica que a loja não tem documento de inventário
	ErrInventoryNotFound = errors.New("store inventory not found")
)

// InsufficientStockError indica estoque insuficiente para um produto do pedido
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.Product)
}
