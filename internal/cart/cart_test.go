package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProduct(id string, price float64) Product {
	return Product{
		ProductID: id,
		Name:      "Producto " + id,
		UnitPrice: price,
		Category:  "abarrotes",
		OwnerID:   "owner-1",
	}
}

func TestAddLine(t *testing.T) {
	c := New()

	c.AddLine(sampleProduct("p1", 10))

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 1 {
		t.Errorf("Expected quantity 1, got %d", lines[0].Quantity)
	}
	if lines[0].Name != "Producto p1" {
		t.Errorf("Expected product name to be copied, got %s", lines[0].Name)
	}
	if lines[0].OwnerID != "owner-1" {
		t.Errorf("Expected owner id to be copied, got %s", lines[0].OwnerID)
	}
}

func TestAddLine_SameProductTwice(t *testing.T) {
	c := New()

	c.AddLine(sampleProduct("p1", 10))
	c.AddLine(sampleProduct("p1", 10))

	// Duas adições do mesmo produto viram uma linha com quantidade 2
	if c.Len() != 1 {
		t.Fatalf("Expected a single line, got %d", c.Len())
	}
	if got := c.Lines()[0].Quantity; got != 2 {
		t.Errorf("Expected quantity 2, got %d", got)
	}
}

func TestTotal(t *testing.T) {
	c := New()
	assert.Equal(t, 0.0, c.Total())

	c.AddLine(sampleProduct("p1", 10))
	c.AddLine(sampleProduct("p1", 10))
	c.AddLine(sampleProduct("p2", 5))
	assert.Equal(t, 25.0, c.Total())

	c.SetQuantity("p1", 3)
	assert.Equal(t, 35.0, c.Total())

	c.RemoveLine("p2")
	assert.Equal(t, 30.0, c.Total())

	c.Clear()
	assert.Equal(t, 0.0, c.Total())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.AddLine(sampleProduct("p1", 10))

	c.SetQuantity("p1", 5)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	// Quantidade zero ou negativa remove o item
	c.SetQuantity("p1", 0)
	assert.Equal(t, 0, c.Len())

	// No-op para produto ausente
	c.SetQuantity("missing", 3)
	assert.Equal(t, 0, c.Len())
}

func TestRemoveLine_AbsentProduct(t *testing.T) {
	c := New()
	c.AddLine(sampleProduct("p1", 10))

	c.RemoveLine("missing")

	assert.Equal(t, 1, c.Len())
}

func TestManager(t *testing.T) {
	m := NewManager()

	// O mesmo cliente sempre enxerga o mesmo carrinho
	m.Cart("customer-1").AddLine(sampleProduct("p1", 10))
	assert.Equal(t, 1, m.Cart("customer-1").Len())

	// Sessões diferentes têm carrinhos independentes
	assert.Equal(t, 0, m.Cart("customer-2").Len())

	// Logout descarta o carrinho
	m.Destroy("customer-1")
	assert.Equal(t, 0, m.Cart("customer-1").Len())
}
