package fulfillment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

func TestCreditLedger_FirstCreditCreatesRow(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreditLedger(ctx, tx, "owner-1", 25))
	require.NoError(t, tx.Commit())

	doc, err := store.GetDocument(ctx, docstore.CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", doc.Data["idDueno"])
	assert.Equal(t, float64(25), doc.Data["totalVentas"])
}

func TestCreditLedger_AddsToExistingTotal(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	require.NoError(t, store.SetDocument(ctx, docstore.CollectionLedger, "owner-1", map[string]any{
		"idDueno":     "owner-1",
		"totalVentas": 100,
	}))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreditLedger(ctx, tx, "owner-1", 25))
	require.NoError(t, tx.Commit())

	// O crédito soma sobre o total travado, nunca sobrescreve o documento
	doc, err := store.GetDocument(ctx, docstore.CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", doc.Data["idDueno"])
	assert.Equal(t, float64(125), doc.Data["totalVentas"])
}

func TestCreditLedger_SequentialCreditsAccumulate(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := NewRepository(store)
	ctx := context.Background()

	// Dois créditos em transações separadas partindo do livro ausente;
	// o segundo enxerga o primeiro em vez de recomeçar do zero
	for _, amount := range []float64{25, 10} {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreditLedger(ctx, tx, "owner-1", amount))
		require.NoError(t, tx.Commit())
	}

	doc, err := store.GetDocument(ctx, docstore.CollectionLedger, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, float64(35), doc.Data["totalVentas"])
}
