package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

func TestGetProfile(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, docstore.CollectionCustomers, "uid-1", map[string]any{
		"nombreUsuario": "Ana",
		"correoUsuario": "ana@example.com",
	}))

	profile, err := uc.GetProfile(ctx, "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", profile.UID)
	assert.Equal(t, "Ana", profile.Name)

	_, err = uc.GetProfile(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = uc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func strPtr(s string) *string {
	return &s
}

func TestUpdateProfile_MergesFields(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, docstore.CollectionCustomers, "uid-1", map[string]any{
		"nombreUsuario": "Ana",
		"correoUsuario": "ana@example.com",
	}))

	err := uc.UpdateProfile(ctx, "uid-1", ProfileUpdate{
		Name:        strPtr("Ana María"),
		Description: strPtr("cliente frecuente"),
	})
	require.NoError(t, err)

	profile, err := uc.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", profile.Name)
	assert.Equal(t, "cliente frecuente", profile.Description)

	// Campo omitido no corpo permanece intacto
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestUpdateProfile_EmptyBodyIsNoop(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, docstore.CollectionCustomers, "uid-1", map[string]any{
		"nombreUsuario": "Ana",
		"correoUsuario": "ana@example.com",
	}))

	require.NoError(t, uc.UpdateProfile(ctx, "uid-1", ProfileUpdate{}))

	profile, err := uc.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestListOrders_OnlyOwn(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, docstore.CollectionOrders, "o1", map[string]any{
		"idCliente": "uid-1", "idDueno": "owner-1", "total": 25, "realizado": false,
	}))
	require.NoError(t, store.SetDocument(ctx, docstore.CollectionOrders, "o2", map[string]any{
		"idCliente": "uid-2", "idDueno": "owner-1", "total": 10, "realizado": true,
	}))

	orders, err := uc.ListOrders(ctx, "uid-1")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, 25.0, orders[0].Total)
}

func TestGetOrder_OwnershipHidesOthers(t *testing.T) {
	store := docstore.NewMemoryStore()
	uc := NewUseCase(NewRepository(store))
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, docstore.CollectionOrders, "o1", map[string]any{
		"idCliente": "uid-1", "idDueno": "owner-1", "total": 25, "realizado": false,
	}))

	order, err := uc.GetOrder(ctx, "uid-1", "o1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", order.OwnerID)

	// Pedido de outro cliente não vaza nem como 403
	_, err = uc.GetOrder(ctx, "uid-2", "o1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
