package customer

import (
	"context"
)

// UseCase contém a lógica de perfil e histórico do cliente
type UseCase struct {
	repository Repository
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{
		repository: repository,
	}
}

// GetProfile retorna o perfil do cliente autenticado
func (uc *UseCase) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	return uc.repository.GetProfile(ctx, uid)
}

// UpdateProfile atualiza os campos editáveis do perfil
func (uc *UseCase) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) error {
	if uid == "" {
		return ErrNotAuthenticated
	}
	return uc.repository.UpdateProfile(ctx, uid, update)
}

// ListOrders retorna o histórico de pedidos do cliente
func (uc *UseCase) ListOrders(ctx context.Context, uid string) ([]Order, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	return uc.repository.ListOrders(ctx, uid)
}

// GetOrder retorna um pedido do próprio cliente
// Pedidos de outros clientes aparecem como inexistentes
func (uc *UseCase) GetOrder(ctx context.Context, uid, orderID string) (*Order, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}

	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != uid {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
