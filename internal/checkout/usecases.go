package checkout

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/mercadobarrio/storefront/internal/cart"
)

// UseCase contém a lógica de negócio do checkout
type UseCase struct {
	repository            Repository
	ordersPlacedCounter   metric.Int64Counter
	stockRejectionCounter metric.Int64Counter
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository) *UseCase {
	meter := otel.Meter("storefront/checkout")
	ordersPlaced, _ := meter.Int64Counter("checkout.orders_placed")
	stockRejections, _ := meter.Int64Counter("checkout.stock_rejections")

	return &UseCase{
		repository:            repository,
		ordersPlacedCounter:   ordersPlaced,
		stockRejectionCounter: stockRejections,
	}
}

// SubmitOrder transforma o carrinho da sessão em um pedido persistido,
// decrementando o estoque da loja na mesma transação
// Em caso de falha nada é persistido e o carrinho permanece intacto
func (uc *UseCase) SubmitOrder(ctx context.Context, c *cart.Cart, customerID, paymentMethod string) (string, error) {
	if customerID == "" {
		return "", ErrNotAuthenticated
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	if !ValidPaymentMethod(paymentMethod) {
		return "", ErrInvalidPaymentMethod
	}

	// Carrinhos com itens de mais de uma loja são rejeitados explicitamente,
	// antes de qualquer escrita
	ownerID := lines[0].OwnerID
	for _, line := range lines[1:] {
		if line.OwnerID != ownerID {
			return "", ErrMixedCart
		}
	}

	// O total sai do mesmo snapshot das linhas; mutações concorrentes do
	// carrinho não podem desalinhar total e listaPedidos
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	log.Printf("➡️ [CHECKOUT] Customer: %s | Store: %s | Items: %d | Total: %.2f",
		customerID, ownerID, len(lines), total)

	// 1. Inicia a transação que engloba decremento de estoque e criação do pedido
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return "", fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	// 2. Obtém o inventário da loja com LOCK PESSIMISTA
	// Isso bloqueia o documento até o Commit ou Rollback
	inv, err := uc.repository.GetInventoryForUpdate(ctx, tx, ownerID)
	if err != nil {
		log.Printf("❌ CHECKOUT FAILED: GetInventoryForUpdate | Store=%s | Error=%v", ownerID, err)
		return "", err
	}

	// 3. Valida e decrementa cada item sobre o snapshot travado
	byID := make(map[string]*InventoryProduct, len(inv.Products))
	for i := range inv.Products {
		byID[inv.Products[i].ProductID] = &inv.Products[i]
	}

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			// Produto removido do inventário não bloqueia o pedido
			log.Printf("⚠️ [CHECKOUT] Product %s not found in inventory of store %s, skipping decrement",
				line.ProductID, ownerID)
			continue
		}

		newQty := product.Available - line.Quantity
		if newQty < 0 {
			uc.stockRejectionCounter.Add(ctx, 1)
			log.Printf("❌ CHECKOUT FAILED: Insufficient stock | Product=%s | Available=%d | Requested=%d",
				line.Name, product.Available, line.Quantity)
			return "", &InsufficientStockError{Product: line.Name}
		}
		product.Available = newQty
	}

	// 4. Grava o inventário decrementado
	if err := uc.repository.SaveInventory(ctx, tx, inv); err != nil {
		log.Printf("❌ CHECKOUT FAILED: SaveInventory | Store=%s | Error=%v", ownerID, err)
		return "", err
	}

	// 5. Persiste o pedido na mesma transação
	order := NewOrder(customerID, ownerID, paymentMethod, lines, total)
	orderID, err := uc.repository.CreateOrder(ctx, tx, order)
	if err != nil {
		log.Printf("❌ CHECKOUT FAILED: CreateOrder | Customer=%s | Error=%v", customerID, err)
		return "", err
	}

	// 6. Commit: pedido e estoque aplicam juntos, ou nada aplica
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("erro ao comitar checkout: %w", err)
	}

	// 7. O carrinho só é limpo depois do commit
	c.Clear()

	uc.ordersPlacedCounter.Add(ctx, 1)
	log.Printf("✅ [CHECKOUT] Success: OrderID=%s | Total: %.2f", orderID, total)
	return orderID, nil
}
