package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGetDocument(t *testing.T) {
	// Arrange
	store := NewMemoryStore()
	ctx := context.Background()

	// Act
	err := store.SetDocument(ctx, CollectionLedger, "owner-1", map[string]any{
		"idDueno":     "owner-1",
		"totalVentas": 42,
	})
	require.NoError(t, err)

	doc, err := store.GetDocument(ctx, CollectionLedger, "owner-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "owner-1", doc.ID)
	assert.Equal(t, "owner-1", doc.Data["idDueno"])
	// Números são normalizados para float64, como no backend JSONB
	assert.Equal(t, float64(42), doc.Data["totalVentas"])
}

func TestMemoryStore_GetDocument_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetDocument(context.Background(), CollectionOrders, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, CollectionCustomers, "uid-1", map[string]any{
		"nombreUsuario": "Ana",
		"descripcion":   "",
	}))

	err := store.UpdateFields(ctx, CollectionCustomers, "uid-1", map[string]any{
		"descripcion": "cliente frecuente",
	})
	require.NoError(t, err)

	doc, err := store.GetDocument(ctx, CollectionCustomers, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", doc.Data["nombreUsuario"])
	assert.Equal(t, "cliente frecuente", doc.Data["descripcion"])
}

func TestMemoryStore_UpdateFields_NotFound(t *testing.T) {
	store := NewMemoryStore()

	err := store.UpdateFields(context.Background(), CollectionCustomers, "missing", map[string]any{"a": 1})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_EnsureDocument(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Cria quando ausente
	err := store.EnsureDocument(ctx, CollectionLedger, "owner-1", map[string]any{"totalVentas": 0})
	require.NoError(t, err)

	doc, err := store.GetDocument(ctx, CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), doc.Data["totalVentas"])

	// Não altera um documento existente
	err = store.EnsureDocument(ctx, CollectionLedger, "owner-1", map[string]any{"totalVentas": 999})
	require.NoError(t, err)

	doc, err = store.GetDocument(ctx, CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), doc.Data["totalVentas"])
}

func TestMemoryStore_AddDocument(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.AddDocument(ctx, CollectionOrders, map[string]any{"total": 10})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.GetDocument(ctx, CollectionOrders, id)
	require.NoError(t, err)
	assert.Equal(t, float64(10), doc.Data["total"])
}

func TestMemoryStore_QueryCollection(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, CollectionOrders, "o1", map[string]any{"idCliente": "uid-1"}))
	require.NoError(t, store.SetDocument(ctx, CollectionOrders, "o2", map[string]any{"idCliente": "uid-2"}))
	require.NoError(t, store.SetDocument(ctx, CollectionOrders, "o3", map[string]any{"idCliente": "uid-1"}))

	docs, err := store.QueryCollection(ctx, CollectionOrders, "idCliente", OpEqual, "uid-1")

	require.NoError(t, err)
	assert.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, "uid-1", doc.Data["idCliente"])
	}
}

func TestMemoryStore_QueryCollection_UnsupportedOperator(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.QueryCollection(context.Background(), CollectionOrders, "total", "~=", 10)

	assert.Error(t, err)
}

func TestMemoryStore_TxCommit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.SetDocument(ctx, CollectionLedger, "owner-1", map[string]any{"totalVentas": 25}))
	require.NoError(t, tx.Commit())

	doc, err := store.GetDocument(ctx, CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, float64(25), doc.Data["totalVentas"])
}

func TestMemoryStore_TxRollback(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, CollectionLedger, "owner-1", map[string]any{"totalVentas": 25}))

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.SetDocument(ctx, CollectionLedger, "owner-1", map[string]any{"totalVentas": 999}))
	require.NoError(t, tx.Rollback())

	// O rollback restaura o snapshot tirado no BeginTx
	doc, err := store.GetDocument(ctx, CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, float64(25), doc.Data["totalVentas"])
}

func TestMemoryStore_RollbackAfterCommitIsNoop(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SetDocument(ctx, CollectionLedger, "owner-1", map[string]any{"totalVentas": 25}))
	require.NoError(t, tx.Commit())

	// defer tx.Rollback() após o commit não pode desfazer nada
	require.NoError(t, tx.Rollback())

	doc, err := store.GetDocument(ctx, CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, float64(25), doc.Data["totalVentas"])
}
