package catalog

import (
	"context"
	"errors"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Repository define as leituras de catálogo; este cliente nunca
// escreve em Duenos nem em Inventario fora do checkout
type Repository interface {
	// ListStores retorna todas as lojas cadastradas
	ListStores(ctx context.Context) ([]StoreProfile, error)

	// GetStore busca uma loja pelo id
	GetStore(ctx context.Context, storeID string) (*StoreProfile, error)

	// GetProducts retorna o inventário da loja; vazio quando a loja
	// ainda não publicou produtos
	GetProducts(ctx context.Context, storeID string) ([]Product, error)
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

func (r *DocstoreRepository) ListStores(ctx context.Context) ([]StoreProfile, error) {
	docs, err := r.store.ListCollection(ctx, docstore.CollectionStores)
	if err != nil {
		return nil, err
	}

	stores := make([]StoreProfile, 0, len(docs))
	for i := range docs {
		store, err := storeFromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		stores = append(stores, *store)
	}
	return stores, nil
}

func (r *DocstoreRepository) GetStore(ctx context.Context, storeID string) (*StoreProfile, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionStores, storeID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return storeFromDocument(doc)
}

func (r *DocstoreRepository) GetProducts(ctx context.Context, storeID string) ([]Product, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionInventory, storeID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return productsFromDocument(doc)
}
