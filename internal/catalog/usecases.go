package catalog

import (
	"context"
	"strings"
)

// UseCase contém a lógica de navegação do catálogo
type UseCase struct {
	repository Repository
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository) *UseCase {
	return &UseCase{
		repository: repository,
	}
}

// ListStores retorna todas as lojas com seus produtos, como na tela inicial
func (uc *UseCase) ListStores(ctx context.Context) ([]StoreWithProducts, error) {
	stores, err := uc.repository.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]StoreWithProducts, 0, len(stores))
	for _, store := range stores {
		products, err := uc.repository.GetProducts(ctx, store.UID)
		if err != nil {
			return nil, err
		}
		result = append(result, StoreWithProducts{
			StoreProfile: store,
			Products:     products,
		})
	}
	return result, nil
}

// SearchStores filtra as lojas pelo nome do local
func (uc *UseCase) SearchStores(ctx context.Context, query string) ([]StoreWithProducts, error) {
	all, err := uc.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	needle := strings.ToLower(query)
	var result []StoreWithProducts
	for _, store := range all {
		if strings.Contains(strings.ToLower(store.StoreName), needle) {
			result = append(result, store)
		}
	}
	return result, nil
}

// GetStore retorna a loja com seu inventário
func (uc *UseCase) GetStore(ctx context.Context, storeID string) (*StoreWithProducts, error) {
	store, err := uc.repository.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	products, err := uc.repository.GetProducts(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &StoreWithProducts{
		StoreProfile: *store,
		Products:     products,
	}, nil
}

// SearchProducts filtra o inventário da loja pelo nome do produto
func (uc *UseCase) SearchProducts(ctx context.Context, storeID, query string) ([]Product, error) {
	if _, err := uc.repository.GetStore(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := uc.repository.GetProducts(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}

	needle := strings.ToLower(query)
	var result []Product
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			result = append(result, product)
		}
	}
	return result, nil
}
