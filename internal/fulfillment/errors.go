package fulfillment

import (
	"errors"
)

var (
	// ErrNotAuthenticated indica que não há cliente autenticado na sessão
	ErrNotAuthenticated = errors.New("no authenticated customer")

	// ErrOrderNotFound indica que o id escaneado não corresponde a um pedido
	ErrOrderNotFound = errors.New("order not found")

	// ErrOwnershipMismatch indica que o pedido pertence a outro cliente
	ErrOwnershipMismatch = errors.New("order does not belong to this customer")

	// ErrMalformedOrder indica um pedido sem total ou sem dono válidos
	ErrMalformedOrder = errors.New("order document is missing total or owner")

	// ErrAlreadyConfirmed indica que o pedido já foi realizado
	// Re-escanear é um no-op: o livro de vendas não é creditado de novo
	ErrAlreadyConfirmed = errors.New("order already confirmed")
)
