package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implementa Store em memória, usado nos testes
// Os documentos passam por um round-trip JSON para reproduzir a
// normalização de tipos do backend JSONB (números viram float64)
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
}

// NewMemoryStore cria uma nova instância de MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
	}
}

func (s *MemoryStore) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getDocument(collection, id)
}

func (s *MemoryStore) ListCollection(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCollection(collection)
}

func (s *MemoryStore) QueryCollection(ctx context.Context, collection, field, operator string, value any) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryCollection(collection, field, operator, value)
}

func (s *MemoryStore) SetDocument(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setDocument(collection, id, data)
}

func (s *MemoryStore) UpdateFields(ctx context.Context, collection, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFields(collection, id, partial)
}

func (s *MemoryStore) EnsureDocument(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureDocument(collection, id, data)
}

func (s *MemoryStore) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addDocument(collection, data)
}

// BeginTx trava o armazenamento inteiro até Commit ou Rollback, o que dá às
// transações em memória a mesma atomicidade e isolamento do backend real
func (s *MemoryStore) BeginTx(ctx context.Context) (Tx, error) {
	s.mu.Lock()
	return &memoryTx{store: s, snapshot: s.clone()}, nil
}

func (s *MemoryStore) clone() map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any, len(s.collections))
	for name, coll := range s.collections {
		cc := make(map[string]map[string]any, len(coll))
		for id, data := range coll {
			cc[id] = cloneData(data)
		}
		out[name] = cc
	}
	return out
}

func (s *MemoryStore) getDocument(collection, id string) (*Document, error) {
	data, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Data: cloneData(data)}, nil
}

func (s *MemoryStore) listCollection(collection string) ([]Document, error) {
	coll := s.collections[collection]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, Document{ID: id, Data: cloneData(coll[id])})
	}
	return docs, nil
}

func (s *MemoryStore) queryCollection(collection, field, operator string, value any) ([]Document, error) {
	if _, ok := sqlOperators[operator]; !ok {
		return nil, fmt.Errorf("unsupported query operator %q", operator)
	}

	all, _ := s.listCollection(collection)
	var docs []Document
	for _, doc := range all {
		fieldValue, ok := doc.Data[field]
		if !ok {
			continue
		}
		if compareValues(fieldValue, operator, value) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *MemoryStore) setDocument(collection, id string, data map[string]any) error {
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		s.collections[collection] = coll
	}
	coll[id] = cloneData(data)
	return nil
}

func (s *MemoryStore) updateFields(collection, id string, partial map[string]any) error {
	data, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range cloneData(partial) {
		data[key] = value
	}
	return nil
}

func (s *MemoryStore) ensureDocument(collection, id string, data map[string]any) error {
	if _, ok := s.collections[collection][id]; ok {
		return nil
	}
	return s.setDocument(collection, id, data)
}

func (s *MemoryStore) addDocument(collection string, data map[string]any) (string, error) {
	id := uuid.New().String()
	if err := s.setDocument(collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// memoryTx opera diretamente sobre o armazenamento, segurando o lock;
// Rollback restaura o snapshot tirado no BeginTx
type memoryTx struct {
	store    *MemoryStore
	snapshot map[string]map[string]map[string]any
	done     bool
}

func (t *memoryTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.collections = t.snapshot
	t.store.mu.Unlock()
	return nil
}

func (t *memoryTx) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	return t.store.getDocument(collection, id)
}

// GetDocumentForUpdate é equivalente a GetDocument aqui: o lock global do
// BeginTx já impede qualquer escrita concorrente
func (t *memoryTx) GetDocumentForUpdate(ctx context.Context, collection, id string) (*Document, error) {
	return t.store.getDocument(collection, id)
}

func (t *memoryTx) ListCollection(ctx context.Context, collection string) ([]Document, error) {
	return t.store.listCollection(collection)
}

func (t *memoryTx) QueryCollection(ctx context.Context, collection, field, operator string, value any) ([]Document, error) {
	return t.store.queryCollection(collection, field, operator, value)
}

func (t *memoryTx) SetDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return t.store.setDocument(collection, id, data)
}

func (t *memoryTx) UpdateFields(ctx context.Context, collection, id string, partial map[string]any) error {
	return t.store.updateFields(collection, id, partial)
}

func (t *memoryTx) EnsureDocument(ctx context.Context, collection, id string, data map[string]any) error {
	return t.store.ensureDocument(collection, id, data)
}

func (t *memoryTx) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	return t.store.addDocument(collection, data)
}

func cloneData(data map[string]any) map[string]any {
	raw, err := json.Marshal(data)
	if err != nil {
		// Dados não serializáveis nunca chegam aqui pelos repositórios
		panic(fmt.Sprintf("memory docstore: unserializable document: %v", err))
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("memory docstore: %v", err))
	}
	return out
}

func compareValues(fieldValue any, operator string, value any) bool {
	left := fmt.Sprint(fieldValue)
	right := fmt.Sprint(value)

	switch operator {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	}

	// Operadores de ordenação: numérico quando ambos os lados parseiam
	lf, lerr := strconv.ParseFloat(left, 64)
	rf, rerr := strconv.ParseFloat(right, 64)
	if lerr == nil && rerr == nil {
		switch operator {
		case OpLess:
			return lf < rf
		case OpLessOrEqual:
			return lf <= rf
		case OpGreater:
			return lf > rf
		case OpGreaterOrEqual:
			return lf >= rf
		}
	}

	switch operator {
	case OpLess:
		return left < right
	case OpLessOrEqual:
		return left <= right
	case OpGreater:
		return left > right
	case OpGreaterOrEqual:
		return left >= right
	}
	return false
}
