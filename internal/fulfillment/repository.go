package fulfillment

import (
	"context"
	"errors"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Repository define as operações de persistência da confirmação de pedidos
type Repository interface {
	// BeginTx inicia a transação que engloba toda a confirmação
	BeginTx(ctx context.Context) (docstore.Tx, error)

	// GetOrderForUpdate obtém o pedido com lock pessimista
	GetOrderForUpdate(ctx context.Context, tx docstore.Tx, orderID string) (*docstore.Document, error)

	// MarkOrderFulfilled marca o pedido como realizado
	MarkOrderFulfilled(ctx context.Context, tx docstore.Tx, orderID string) error

	// CreditLedger soma amount ao total acumulado da loja, criando o livro
	// de vendas na primeira venda
	CreditLedger(ctx context.Context, tx docstore.Tx, ownerID string, amount float64) error
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

func (r *DocstoreRepository) GetOrderForUpdate(ctx context.Context, tx docstore.Tx, orderID string) (*docstore.Document, error) {
	doc, err := tx.GetDocumentForUpdate(ctx, docstore.CollectionOrders, orderID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *DocstoreRepository) MarkOrderFulfilled(ctx context.Context, tx docstore.Tx, orderID string) error {
	return tx.UpdateFields(ctx, docstore.CollectionOrders, orderID, map[string]any{
		"realizado": true,
	})
}

func (r *DocstoreRepository) CreditLedger(ctx context.Context, tx docstore.Tx, ownerID string, amount float64) error {
	// A linha é criada antes do lock; dois primeiros créditos concorrentes
	// da mesma loja serializam no FOR UPDATE em vez de se sobrescreverem
	err := tx.EnsureDocument(ctx, docstore.CollectionLedger, ownerID, map[string]any{
		"idDueno":     ownerID,
		"totalVentas": 0,
	})
	if err != nil {
		return err
	}

	doc, err := tx.GetDocumentForUpdate(ctx, docstore.CollectionLedger, ownerID)
	if err != nil {
		return err
	}

	total, _ := doc.Data["totalVentas"].(float64)
	return tx.UpdateFields(ctx, docstore.CollectionLedger, ownerID, map[string]any{
		"totalVentas": total + amount,
	})
}
