package cart

import (
	"sync"
)

// Manager guarda o carrinho de cada sessão autenticada, criado vazio no
// primeiro acesso e destruído no logout ou checkout bem sucedido
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewManager cria uma nova instância de Manager
func NewManager() *Manager {
	return &Manager{
		carts: make(map[string]*Cart),
	}
}

// Cart retorna o carrinho da sessão, criando um vazio se necessário
func (m *Manager) Cart(customerID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[customerID]
	if !ok {
		c = New()
		m.carts[customerID] = c
	}
	return c
}

// Destroy descarta o carrinho da sessão
func (m *Manager) Destroy(customerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, customerID)
}
