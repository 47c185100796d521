package customer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mercadobarrio/storefront/internal/cart"
	"github.com/mercadobarrio/storefront/internal/docstore"
)

var (
	// ErrNotAuthenticated indica que não há cliente autenticado na sessão
	ErrNotAuthenticated = errors.New("no authenticated customer")

	// ErrCustomerNotFound indica que o perfil não existe na coleção Clientes
	ErrCustomerNotFound = errors.New("customer profile not found")

	// ErrOrderNotFound indica que o pedido não existe ou pertence a outro cliente
	ErrOrderNotFound = errors.New("order not found")
)

// Profile representa o perfil do cliente na coleção Clientes
type Profile struct {
	UID         string    `json:"uid"`
	Name        string    `json:"nombreUsuario"`
	Email       string    `json:"correoUsuario"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"fechaHoraCreacion"`
}

// ProfileUpdate são os campos editáveis do perfil
// Campos ausentes no corpo da requisição não são alterados
type ProfileUpdate struct {
	Name        *string `json:"nombreUsuario"`
	Email       *string `json:"correoUsuario"`
	Description *string `json:"descripcion"`
}

// Order é a visão de um pedido para o histórico do cliente
type Order struct {
	ID            string      `json:"order_id"`
	CustomerID    string      `json:"idCliente"`
	Lines         []cart.Line `json:"listaPedidos"`
	OwnerID       string      `json:"idDueno"`
	PaymentMethod string      `json:"metodoPago"`
	Total         float64     `json:"total"`
	CreatedAt     time.Time   `json:"fecha"`
	Fulfilled     bool        `json:"realizado"`
}

func profileFromDocument(doc *docstore.Document) (*Profile, error) {
	var profile Profile
	if err := decodeDocument(doc, &profile); err != nil {
		return nil, err
	}
	if profile.UID == "" {
		profile.UID = doc.ID
	}
	return &profile, nil
}

func orderFromDocument(doc *docstore.Document) (*Order, error) {
	var order Order
	if err := decodeDocument(doc, &order); err != nil {
		return nil, err
	}
	order.ID = doc.ID
	return &order, nil
}

func decodeDocument(doc *docstore.Document, out any) error {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", doc.ID, err)
	}
	return nil
}
