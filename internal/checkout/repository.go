package checkout

import (
	"context"
	"errors"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Repository define as operações de persistência do checkout
type Repository interface {
	// BeginTx inicia a transação que engloba todo o checkout
	BeginTx(ctx context.Context) (docstore.Tx, error)

	// GetInventoryForUpdate obtém o inventário da loja com lock pessimista
	GetInventoryForUpdate(ctx context.Context, tx docstore.Tx, ownerID string) (*Inventory, error)

	// SaveInventory grava o inventário com as quantidades decrementadas
	SaveInventory(ctx context.Context, tx docstore.Tx, inv *Inventory) error

	// CreateOrder persiste o pedido e retorna o id gerado
	CreateOrder(ctx context.Context, tx docstore.Tx, order *Order) (string, error)
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

func (r *DocstoreRepository) BeginTx(ctx context.Context) (docstore.Tx, error) {
	return r.store.BeginTx(ctx)
}

func (r *DocstoreRepository) GetInventoryForUpdate(ctx context.Context, tx docstore.Tx, ownerID string) (*Inventory, error) {
	doc, err := tx.GetDocumentForUpdate(ctx, docstore.CollectionInventory, ownerID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return InventoryFromDocument(doc)
}

func (r *DocstoreRepository) SaveInventory(ctx context.Context, tx docstore.Tx, inv *Inventory) error {
	data, err := inv.Data()
	if err != nil {
		return err
	}
	return tx.SetDocument(ctx, docstore.CollectionInventory, inv.OwnerID, data)
}

func (r *DocstoreRepository) CreateOrder(ctx context.Context, tx docstore.Tx, order *Order) (string, error) {
	data, err := order.Data()
	if err != nil {
		return "", err
	}
	return tx.AddDocument(ctx, docstore.CollectionOrders, data)
}
