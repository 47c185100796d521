package customer

import (
	"context"
	"errors"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Repository define as operações de persistência do perfil e histórico
type Repository interface {
	// GetProfile busca o perfil do cliente pelo uid
	GetProfile(ctx context.Context, uid string) (*Profile, error)

	// UpdateProfile aplica um merge parcial sobre o perfil
	UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) error

	// ListOrders retorna os pedidos do cliente
	ListOrders(ctx context.Context, uid string) ([]Order, error)

	// GetOrder busca um pedido pelo id
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

// DocstoreRepository implementa Repository sobre o armazenamento de documentos
type DocstoreRepository struct {
	store docstore.Store
}

// NewRepository cria uma nova instância de DocstoreRepository
func NewRepository(store docstore.Store) Repository {
	return &DocstoreRepository{
		store: store,
	}
}

func (r *DocstoreRepository) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionCustomers, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return profileFromDocument(doc)
}

func (r *DocstoreRepository) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) error {
	// Só os campos presentes no corpo entram no merge; omitir um campo
	// nunca apaga o valor armazenado
	fields := make(map[string]any)
	if update.Name != nil {
		fields["nombreUsuario"] = *update.Name
	}
	if update.Email != nil {
		fields["correoUsuario"] = *update.Email
	}
	if update.Description != nil {
		fields["descripcion"] = *update.Description
	}
	if len(fields) == 0 {
		return nil
	}

	err := r.store.UpdateFields(ctx, docstore.CollectionCustomers, uid, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

func (r *DocstoreRepository) ListOrders(ctx context.Context, uid string) ([]Order, error) {
	docs, err := r.store.QueryCollection(ctx, docstore.CollectionOrders, "idCliente", docstore.OpEqual, uid)
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(docs))
	for i := range docs {
		order, err := orderFromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *DocstoreRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionOrders, orderID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return orderFromDocument(doc)
}
