// Package apiclient é um cliente Go para a API HTTP do storefront,
// usado por ferramentas de linha de comando e testes de fumaça.
package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError representa uma resposta de erro da API
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
}

// Product são os dados enviados ao adicionar um item ao carrinho
type Product struct {
	ProductID string  `json:"idProducto"`
	Name      string  `json:"nombreProducto"`
	UnitPrice float64 `json:"precioProducto"`
	Category  string  `json:"categoria"`
	OwnerID   string  `json:"idDueno"`
}

// CartLine é um item do carrinho retornado pela API
type CartLine struct {
	ProductID string  `json:"idProducto"`
	Name      string  `json:"nombreProducto"`
	Quantity  int     `json:"cantidad"`
	UnitPrice float64 `json:"precio"`
	Category  string  `json:"categoria"`
	OwnerID   string  `json:"idDueno"`
}

// Cart é o conteúdo do carrinho da sessão
type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// Store é uma loja com seu inventário
type Store struct {
	UID       string    `json:"uid"`
	StoreName string    `json:"nombreLocal"`
	OwnerName string    `json:"nombreUsuario"`
	Address   string    `json:"direccion"`
	Phone     string    `json:"telefono"`
	ImageURL  string    `json:"imagenUrl"`
	Products  []Product `json:"productos"`
}

// Order é um pedido do histórico do cliente
type Order struct {
	ID            string     `json:"order_id"`
	Lines         []CartLine `json:"listaPedidos"`
	OwnerID       string     `json:"idDueno"`
	PaymentMethod string     `json:"metodoPago"`
	Total         float64    `json:"total"`
	CreatedAt     time.Time  `json:"fecha"`
	Fulfilled     bool       `json:"realizado"`
}

// Confirmation é o resultado de uma confirmação de pedido
type Confirmation struct {
	OrderID string  `json:"order_id"`
	OwnerID string  `json:"idDueno"`
	Total   float64 `json:"total"`
}

// Profile é o perfil do cliente
type Profile struct {
	UID         string `json:"uid"`
	Name        string `json:"nombreUsuario"`
	Email       string `json:"correoUsuario"`
	Description string `json:"descripcion"`
}

// Client acessa a API do storefront em nome de um cliente autenticado
type Client struct {
	http *resty.Client
}

// New cria um cliente apontando para baseURL, autenticado como customerID
func New(baseURL, customerID string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-Customer-ID", customerID).
		SetTimeout(30 * time.Second)

	return &Client{http: http}
}

// ListStores retorna as lojas cadastradas; query filtra pelo nome do local
func (c *Client) ListStores(ctx context.Context, query string) ([]Store, error) {
	var out struct {
		Stores []Store `json:"stores"`
	}
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if query != "" {
		req.SetQueryParam("q", query)
	}
	if err := c.do(req, resty.MethodGet, "/api/stores"); err != nil {
		return nil, err
	}
	return out.Stores, nil
}

// GetStore retorna uma loja com seu inventário
func (c *Client) GetStore(ctx context.Context, storeID string) (*Store, error) {
	var out Store
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/api/stores/"+storeID); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchProducts filtra o inventário de uma loja pelo nome do produto
func (c *Client) SearchProducts(ctx context.Context, storeID, query string) ([]Product, error) {
	var out struct {
		Products []Product `json:"productos"`
	}
	req := c.http.R().SetContext(ctx).SetResult(&out).SetQueryParam("q", query)
	if err := c.do(req, resty.MethodGet, "/api/stores/"+storeID+"/products"); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// AddToCart adiciona um produto ao carrinho da sessão
func (c *Client) AddToCart(ctx context.Context, product Product) error {
	req := c.http.R().SetContext(ctx).SetBody(product)
	return c.do(req, resty.MethodPost, "/api/cart/items")
}

// SetQuantity altera a quantidade de um item do carrinho
func (c *Client) SetQuantity(ctx context.Context, productID string, quantity int) error {
	req := c.http.R().SetContext(ctx).SetBody(map[string]int{"cantidad": quantity})
	return c.do(req, resty.MethodPut, "/api/cart/items/"+productID)
}

// GetCart retorna o conteúdo do carrinho da sessão
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var out Cart
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/api/cart"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Checkout submete o carrinho como um pedido e retorna o id gerado
func (c *Client) Checkout(ctx context.Context, paymentMethod string) (string, error) {
	var out struct {
		OrderID string `json:"order_id"`
	}
	req := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"metodoPago": paymentMethod}).
		SetResult(&out)
	if err := c.do(req, resty.MethodPost, "/api/checkout"); err != nil {
		return "", err
	}
	return out.OrderID, nil
}

// ConfirmOrder confirma a retirada de um pedido pelo id escaneado
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) (*Confirmation, error) {
	var out Confirmation
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if err := c.do(req, resty.MethodPost, "/api/orders/"+orderID+"/confirm"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders retorna o histórico de pedidos do cliente
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/api/orders"); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// Profile retorna o perfil do cliente autenticado
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	req := c.http.R().SetContext(ctx).SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/api/customers/me"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *resty.Request, method, path string) error {
	apiErr := &APIError{}
	req.SetError(apiErr)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("storefront api request failed: %w", err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}
