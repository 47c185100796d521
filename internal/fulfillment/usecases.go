package fulfillment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Confirmation é o resultado de uma confirmação bem sucedida
type Confirmation struct {
	OrderID string  `json:"order_id"`
	OwnerID string  `json:"idDueno"`
	Total   float64 `json:"total"`
}

// UseCase contém a lógica de negócio da confirmação de pedidos
type UseCase struct {
	repository             Repository
	ordersFulfilledCounter metric.Int64Counter
}

// NewUseCase cria uma nova instância de UseCase
func NewUseCase(repository Repository) *UseCase {
	meter := otel.Meter("storefront/fulfillment")
	fulfilled, _ := meter.Int64Counter("fulfillment.orders_confirmed")

	return &UseCase{
		repository:             repository,
		ordersFulfilledCounter: fulfilled,
	}
}

// ConfirmOrder marca o pedido escaneado como realizado e credita o total
// no livro de vendas da loja, tudo em uma única transação
// O payload do QR é o próprio id do pedido, em texto puro
func (uc *UseCase) ConfirmOrder(ctx context.Context, scannedOrderID, currentUserID string) (*Confirmation, error) {
	if currentUserID == "" {
		return nil, ErrNotAuthenticated
	}

	orderID := strings.TrimSpace(scannedOrderID)
	if orderID == "" {
		return nil, ErrOrderNotFound
	}

	log.Printf("➡️ [CONFIRM ORDER] OrderID: %s | Customer: %s", orderID, currentUserID)

	// 1. Inicia a transação que engloba a flag realizado e o crédito de vendas
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	// 2. Obtém o pedido com LOCK PESSIMISTA
	// Dois scans simultâneos do mesmo QR serializam aqui
	doc, err := uc.repository.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		log.Printf("❌ CONFIRM FAILED: GetOrderForUpdate | OrderID=%s | Error=%v", orderID, err)
		return nil, err
	}

	// 3. O pedido só pode ser confirmado pelo cliente que o criou
	customerID, _ := doc.Data["idCliente"].(string)
	if customerID != currentUserID {
		log.Printf("❌ CONFIRM FAILED: Ownership mismatch | OrderID=%s", orderID)
		return nil, ErrOwnershipMismatch
	}

	// 4. total e idDueno são obrigatórios para creditar a loja
	total, hasTotal := doc.Data["total"].(float64)
	ownerID, hasOwner := doc.Data["idDueno"].(string)
	if !hasTotal || !hasOwner || ownerID == "" {
		log.Printf("❌ CONFIRM FAILED: Malformed order | OrderID=%s", orderID)
		return nil, ErrMalformedOrder
	}

	// 5. Idempotência: a flag é verificada ANTES de escrever, dentro do lock,
	// então um pedido já realizado nunca credita as vendas duas vezes
	if fulfilled, _ := doc.Data["realizado"].(bool); fulfilled {
		log.Printf("ℹ️  [IDEMPOTENCY] Order already confirmed | OrderID=%s", orderID)
		return nil, ErrAlreadyConfirmed
	}

	// 6. Marca o pedido como realizado
	if err := uc.repository.MarkOrderFulfilled(ctx, tx, orderID); err != nil {
		log.Printf("❌ CONFIRM FAILED: MarkOrderFulfilled | OrderID=%s | Error=%v", orderID, err)
		return nil, err
	}

	// 7. Credita o total no livro de vendas, criando-o na primeira venda
	if err := uc.repository.CreditLedger(ctx, tx, ownerID, total); err != nil {
		log.Printf("❌ CONFIRM FAILED: CreditLedger | Store=%s | Error=%v", ownerID, err)
		return nil, err
	}

	// 8. Commit: flag e crédito aplicam juntos, ou nada aplica
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("erro ao comitar confirmação: %w", err)
	}

	uc.ordersFulfilledCounter.Add(ctx, 1)
	log.Printf("✅ [CONFIRM ORDER] Success: OrderID=%s | Store=%s | Credited: %.2f", orderID, ownerID, total)

	return &Confirmation{
		OrderID: orderID,
		OwnerID: ownerID,
		Total:   total,
	}, nil
}
