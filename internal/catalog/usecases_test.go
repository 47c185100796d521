package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

func seedStore(t *testing.T, store *docstore.MemoryStore, uid, storeName string) {
	t.Helper()
	require.NoError(t, store.SetDocument(context.Background(), docstore.CollectionStores, uid, map[string]any{
		"nombreUsuario": "Dueño " + uid,
		"nombreLocal":   storeName,
		"direccion":     "Calle Falsa 123",
	}))
}

func seedProducts(t *testing.T, store *docstore.MemoryStore, uid string, names ...string) {
	t.Helper()

	products := make([]map[string]any, 0, len(names))
	for i, name := range names {
		products = append(products, map[string]any{
			"idProducto":       name,
			"nombreProducto":   name,
			"cantidadProducto": i + 1,
			"precioProducto":   10.0,
		})
	}
	require.NoError(t, store.SetDocument(context.Background(), docstore.CollectionInventory, uid, map[string]any{
		"idDueno":   uid,
		"productos": products,
	}))
}

func TestListStores_JoinsInventories(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))

	seedStore(t, store, "owner-1", "Panaderia La Espiga")
	seedStore(t, store, "owner-2", "Verduleria Don Pepe")
	seedProducts(t, store, "owner-1", "Pan", "Facturas")

	stores, err := uc.ListStores(context.Background())

	require.NoError(t, err)
	require.Len(t, stores, 2)

	byUID := make(map[string]StoreWithProducts, len(stores))
	for _, s := range stores {
		byUID[s.UID] = s
	}

	assert.Equal(t, "Panaderia La Espiga", byUID["owner-1"].StoreName)
	assert.Len(t, byUID["owner-1"].Products, 2)

	// Loja sem inventário publicado aparece com a lista vazia
	assert.Empty(t, byUID["owner-2"].Products)
}

func TestSearchStores_FiltersByName(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))

	seedStore(t, store, "owner-1", "Panaderia La Espiga")
	seedStore(t, store, "owner-2", "Verduleria Don Pepe")

	stores, err := uc.SearchStores(context.Background(), "panaderia")

	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "owner-1", stores[0].UID)
}

func TestGetStore_NotFound(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))

	_, err := uc.GetStore(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestSearchProducts(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))

	seedStore(t, store, "owner-1", "Panaderia La Espiga")
	seedProducts(t, store, "owner-1", "Pan integral", "Pan de campo", "Facturas")

	products, err := uc.SearchProducts(context.Background(), "owner-1", "pan")

	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Contains(t, p.Name, "Pan")
	}

	// Busca vazia devolve o inventário inteiro
	all, err := uc.SearchProducts(context.Background(), "owner-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Loja inexistente é erro, não lista vazia
	_, err = uc.SearchProducts(context.Background(), "missing", "pan")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}
