package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mercadobarrio/storefront/internal/docstore"
)

// ErrStoreNotFound indica que a loja não existe na coleção Duenos
var ErrStoreNotFound = errors.New("store not found")

// StoreProfile representa o documento de uma loja na coleção Duenos
type StoreProfile struct {
	UID       string `json:"uid"`
	OwnerName string `json:"nombreUsuario"`
	Email     string `json:"correoUsuario"`
	Address   string `json:"direccion"`
	Phone     string `json:"telefono"`
	StoreName string `json:"nombreLocal"`
	ImageURL  string `json:"imagenUrl"`
}

// Product representa um produto do inventário exposto para navegação
type Product struct {
	ProductID string  `json:"idProducto"`
	Name      string  `json:"nombreProducto"`
	Category  string  `json:"categoria"`
	Available int     `json:"cantidadProducto"`
	UnitPrice float64 `json:"precioProducto"`
	ImageRef  string  `json:"imagen"`
}

// StoreWithProducts junta a loja com seu inventário, como na tela inicial
type StoreWithProducts struct {
	StoreProfile
	Products []Product `json:"productos"`
}

func storeFromDocument(doc *docstore.Document) (*StoreProfile, error) {
	var store StoreProfile
	if err := decodeDocument(doc, &store); err != nil {
		return nil, err
	}
	if store.UID == "" {
		store.UID = doc.ID
	}
	return &store, nil
}

func productsFromDocument(doc *docstore.Document) ([]Product, error) {
	var inventory struct {
		Products []Product `json:"productos"`
	}
	if err := decodeDocument(doc, &inventory); err != nil {
		return nil, err
	}
	return inventory.Products, nil
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
