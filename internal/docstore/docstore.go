package docstore

import (
	"context"
	"errors"
	"fmt"
)

// Coleções usadas pelo storefront. Os nomes seguem o backend original.
const (
	CollectionOrders    = "Pedidos"
	CollectionInventory = "Inventario"
	CollectionLedger    = "Ventas"
	CollectionCustomers = "Clientes"
	CollectionStores    = "Duenos"
)

// Operadores aceitos por QueryCollection
const (
	OpEqual          = "=="
	OpNotEqual       = "!="
	OpLess           = "<"
	OpLessOrEqual    = "<="
	OpGreater        = ">"
	OpGreaterOrEqual = ">="
)

// ErrNotFound indica que o documento não existe na coleção
var ErrNotFound = errors.New("document not found")

// Document representa um documento genérico com seu id
type Document struct {
	ID   string
	Data map[string]any
}

// Reader agrupa as operações de leitura, disponíveis dentro e fora de transações
type Reader interface {
	// GetDocument busca um documento pelo id
	GetDocument(ctx context.Context, collection, id string) (*Document, error)

	// ListCollection retorna todos os documentos de uma coleção
	ListCollection(ctx context.Context, collection string) ([]Document, error)

	// QueryCollection retorna os documentos cujo campo satisfaz o operador
	QueryCollection(ctx context.Context, collection, field, operator string, value any) ([]Document, error)
}

// Writer agrupa as operações de escrita
type Writer interface {
	// SetDocument cria ou sobrescreve um documento
	SetDocument(ctx context.Context, collection, id string, data map[string]any) error

	// UpdateFields aplica um merge parcial sobre um documento existente
	UpdateFields(ctx context.Context, collection, id string, partial map[string]any) error

	// EnsureDocument cria o documento quando ausente; não altera um existente
	// Dentro de uma transação, a linha criada pode então ser travada com
	// GetDocumentForUpdate mesmo quando ainda não existia
	EnsureDocument(ctx context.Context, collection, id string, data map[string]any) error

	// AddDocument cria um documento com id gerado pelo armazenamento
	AddDocument(ctx context.Context, collection string, data map[string]any) (string, error)
}

// Store define a interface do armazenamento de documentos
type Store interface {
	Reader
	Writer

	// BeginTx inicia uma transação atômica sobre o armazenamento
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx é uma transação atômica; todas as escritas só ficam visíveis após Commit
type Tx interface {
	Reader
	Writer

	// GetDocumentForUpdate obtém o documento com lock pessimista
	// Isso bloqueia o documento até o Commit ou Rollback
	GetDocumentForUpdate(ctx context.Context, collection, id string) (*Document, error)

	Commit() error
	Rollback() error
}

// TransientError marca uma falha de IO re-tentável pelo chamador (rede, backend)
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient storage failure in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient informa se err representa uma falha re-tentável
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}
