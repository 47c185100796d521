package checkout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mercadobarrio/storefront/internal/cart"
	"github.com/mercadobarrio/storefront/internal/docstore"
)

// Métodos de pagamento aceitos no checkout
const (
	PaymentMethodCash   = "efectivo"
	PaymentMethodDebit  = "debito"
	PaymentMethodCredit = "credito"
)

// ValidPaymentMethod informa se o método de pagamento é aceito
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodDebit, PaymentMethodCredit:
		return true
	}
	return false
}

// Order representa um pedido persistido na coleção Pedidos
// Imutável depois de criado, exceto pelo campo realizado
type Order struct {
	ID            string      `json:"-"`
	Lines         []cart.Line `json:"listaPedidos"`
	CustomerID    string      `json:"idCliente"`
	OwnerID       string      `json:"idDueno"`
	PaymentMethod string      `json:"metodoPago"`
	Total         float64     `json:"total"`
	CreatedAt     time.Time   `json:"fecha"`
	Fulfilled     bool        `json:"realizado"`
}

// NewOrder cria uma nova instância de Order, ainda não realizado
func NewOrder(customerID, ownerID, paymentMethod string, lines []cart.Line, total float64) *Order {
	return &Order{
		Lines:         lines,
		CustomerID:    customerID,
		OwnerID:       ownerID,
		PaymentMethod: paymentMethod,
		Total:         total,
		CreatedAt:     time.Now(),
		Fulfilled:     false,
	}
}

// Data converte o pedido para o corpo do documento
func (o *Order) Data() (map[string]any, error) {
	return toData(o)
}

// InventoryProduct representa um produto dentro do inventário de uma loja
type InventoryProduct struct {
	ProductID string  `json:"idProducto"`
	Name      string  `json:"nombreProducto"`
	Category  string  `json:"categoria"`
	Available int     `json:"cantidadProducto"`
	UnitPrice float64 `json:"precioProducto"`
	ImageRef  string  `json:"imagen"`
}

// Inventory representa o documento de inventário de uma loja
type Inventory struct {
	OwnerID  string             `json:"idDueno"`
	Products []InventoryProduct `json:"productos"`
}

// InventoryFromDocument decodifica um documento da coleção Inventario
func InventoryFromDocument(doc *docstore.Document) (*Inventory, error) {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory document %s: %w", doc.ID, err)
	}

	var inv Inventory
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("failed to decode inventory document %s: %w", doc.ID, err)
	}
	if inv.OwnerID == "" {
		inv.OwnerID = doc.ID
	}
	return &inv, nil
}

// Data converte o inventário para o corpo do documento
func (i *Inventory) Data() (map[string]any, error) {
	return toData(i)
}

func toData(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document body: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode document body: %w", err)
	}
	return data, nil
}
