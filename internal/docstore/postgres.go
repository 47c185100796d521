package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier é satisfeita tanto pelo pool quanto por pgx.Tx
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore implementa Store usando PostgreSQL
// Cada documento vive em uma linha da tabela documents, com o corpo em JSONB
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore cria uma nova instância de PostgresStore
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

func (s *PostgresStore) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	return getDocument(ctx, s.db, collection, id, false)
}

func (s *PostgresStore) ListCollection(ctx context.Context, collection string) ([]Document, error) {
	return listCollection(ctx, s.db, collection)
}

func (s *PostgresStore) QueryCollection(ctx context.Context, collection, field, operator string, value any) ([]Document, error) {
	return queryCollection(ctx, s.db, collection, field, operator, value)
}

func (s *PostgresStore) SetDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return setDocument(ctx, s.db, collection, id, data)
}

func (s *PostgresStore) UpdateFields(ctx context.Context, collection, id string, partial map[string]any) error {
	return updateFields(ctx, s.db, collection, id, partial)
}

func (s *PostgresStore) EnsureDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return ensureDocument(ctx, s.db, collection, id, data)
}

func (s *PostgresStore) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	return addDocument(ctx, s.db, collection, data)
}

// BeginTx inicia uma nova transação
func (s *PostgresStore) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, &TransientError{Op: "begin tx", Err: err}
	}
	return &PostgresTx{tx: tx}, nil
}

// PostgresTx implementa a interface Tx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit() error {
	if err := t.tx.Commit(context.Background()); err != nil {
		return &TransientError{Op: "commit", Err: err}
	}
	return nil
}

func (t *PostgresTx) Rollback() error {
	return t.tx.Rollback(context.Background())
}

func (t *PostgresTx) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	return getDocument(ctx, t.tx, collection, id, false)
}

// GetDocumentForUpdate obtém o documento com lock pessimista (FOR UPDATE)
// Isso bloqueia a linha no banco até o Commit ou Rollback
func (t *PostgresTx) GetDocumentForUpdate(ctx context.Context, collection, id string) (*Document, error) {
	return getDocument(ctx, t.tx, collection, id, true)
}

func (t *PostgresTx) ListCollection(ctx context.Context, collection string) ([]Document, error) {
	return listCollection(ctx, t.tx, collection)
}

func (t *PostgresTx) QueryCollection(ctx context.Context, collection, field, operator string, value any) ([]Document, error) {
	return queryCollection(ctx, t.tx, collection, field, operator, value)
}

func (t *PostgresTx) SetDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return setDocument(ctx, t.tx, collection, id, data)
}

func (t *PostgresTx) UpdateFields(ctx context.Context, collection, id string, partial map[string]any) error {
	return updateFields(ctx, t.tx, collection, id, partial)
}

func (t *PostgresTx) EnsureDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return ensureDocument(ctx, t.tx, collection, id, data)
}

func (t *PostgresTx) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	return addDocument(ctx, t.tx, collection, data)
}

func getDocument(ctx context.Context, q pgxQuerier, collection, id string, forUpdate bool) (*Document, error) {
	query := `
		SELECT data FROM documents
		WHERE collection = $1 AND id = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var raw []byte
	err := q.QueryRow(ctx, query, collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &TransientError{Op: "get document", Err: err}
	}

	doc := Document{ID: id}
	if err := json.Unmarshal(raw, &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

func listCollection(ctx context.Context, q pgxQuerier, collection string) ([]Document, error) {
	rows, err := q.Query(ctx, `
		SELECT id, data FROM documents
		WHERE collection = $1
		ORDER BY created_at
	`, collection)
	if err != nil {
		return nil, &TransientError{Op: "list collection", Err: err}
	}
	defer rows.Close()

	return scanDocuments(rows, collection)
}

func queryCollection(ctx context.Context, q pgxQuerier, collection, field, operator string, value any) ([]Document, error) {
	sqlOp, ok := sqlOperators[operator]
	if !ok {
		return nil, fmt.Errorf("unsupported query operator %q", operator)
	}

	// Os campos JSONB são comparados como texto, suficiente para as buscas
	// por igualdade de id usadas pelo storefront
	query := fmt.Sprintf(`
		SELECT id, data FROM documents
		WHERE collection = $1 AND data->>$2 %s $3
		ORDER BY created_at
	`, sqlOp)

	rows, err := q.Query(ctx, query, collection, field, fmt.Sprint(value))
	if err != nil {
		return nil, &TransientError{Op: "query collection", Err: err}
	}
	defer rows.Close()

	return scanDocuments(rows, collection)
}

var sqlOperators = map[string]string{
	OpEqual:          "=",
	OpNotEqual:       "<>",
	OpLess:           "<",
	OpLessOrEqual:    "<=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
}

func scanDocuments(rows pgx.Rows, collection string) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, &TransientError{Op: "scan document", Err: err}
		}

		doc := Document{ID: id}
		if err := json.Unmarshal(raw, &doc.Data); err != nil {
			return nil, fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &TransientError{Op: "iterate documents", Err: err}
	}
	return docs, nil
}

func setDocument(ctx context.Context, q pgxQuerier, collection, id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, collection, id, string(raw))
	if err != nil {
		return &TransientError{Op: "set document", Err: err}
	}
	return nil
}

func ensureDocument(ctx context.Context, q pgxQuerier, collection, id string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	// Um insert concorrente da mesma chave bloqueia aqui até o commit da
	// outra transação e então vira no-op
	_, err = q.Exec(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO NOTHING
	`, collection, id, string(raw))
	if err != nil {
		return &TransientError{Op: "ensure document", Err: err}
	}
	return nil
}

func updateFields(ctx context.Context, q pgxQuerier, collection, id string, partial map[string]any) error {
	raw, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to encode partial document %s/%s: %w", collection, id, err)
	}

	tag, err := q.Exec(ctx, `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`, collection, id, string(raw))
	if err != nil {
		return &TransientError{Op: "update fields", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func addDocument(ctx context.Context, q pgxQuerier, collection string, data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode document for %s: %w", collection, err)
	}

	id := uuid.New().String()
	_, err = q.Exec(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
	`, collection, id, string(raw))
	if err != nil {
		return "", &TransientError{Op: "add document", Err: err}
	}
	return id, nil
}
