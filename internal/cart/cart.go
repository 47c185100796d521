package cart

import (
	"sync"
)

// Product são os dados copiados para o carrinho ao adicionar um item
type Product struct {
	ProductID string  `json:"idProducto" binding:"required"`
	Name      string  `json:"nombreProducto" binding:"required"`
	UnitPrice float64 `json:"precioProducto"`
	Category  string  `json:"categoria"`
	OwnerID   string  `json:"idDueno" binding:"required"`
}

// Line representa um item do carrinho; Quantity é sempre >= 1
type Line struct {
	ProductID string  `json:"idProducto"`
	Name      string  `json:"nombreProducto"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio"`
	Category  string  `json:"categoria"`
	OwnerID   string  `json:"idDueno"`
}

// Cart mapeia id de produto para o item correspondente
// Pertence exclusivamente à sessão do cliente e nunca é persistido
type Cart struct {
	mu    sync.Mutex
	lines map[string]*Line
}

// New cria um carrinho vazio
func New() *Cart {
	return &Cart{
		lines: make(map[string]*Line),
	}
}

// AddLine adiciona um produto ao carrinho
// Se o produto já está presente, incrementa a quantidade em 1
func (c *Cart) AddLine(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[p.ProductID]; ok {
		line.Quantity++
		return
	}
	c.lines[p.ProductID] = &Line{
		ProductID: p.ProductID,
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: p.UnitPrice,
		Category:  p.Category,
		OwnerID:   p.OwnerID,
	}
}

// RemoveLine remove o item do carrinho; no-op se o produto não está presente
func (c *Cart) RemoveLine(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lines, productID)
}

// SetQuantity sobrescreve a quantidade de um item
// Quantidade <= 0 equivale a RemoveLine; no-op se o produto não está presente
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		delete(c.lines, productID)
		return
	}
	if line, ok := c.lines[productID]; ok {
		line.Quantity = quantity
	}
}

// Clear esvazia o carrinho; chamado após um pedido bem sucedido
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]*Line)
}

// Total soma unitPrice * quantity sobre todos os itens
// Sempre recalculado, refletindo a última mutação
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Lines retorna uma cópia dos itens do carrinho
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, *line)
	}
	return lines
}

// Len retorna a quantidade de itens distintos no carrinho
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
