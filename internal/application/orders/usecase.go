package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/gestorlite/erp-api/internal/application/inventory"
	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// OrderUseCase cria pedidos em rascunho e os confirma. A confirmação registra
// uma movimentação de estoque por item através do registrador único, dentro de
// uma só transação: compras viram ENTRADAs (com frete rateado por item) e
// vendas viram SAIDAs (FIFO ou legado conforme a flag da borda).
type OrderUseCase struct {
	txRunner    appinv.TxRunner
	movementUC  *appinv.RegisterMovementUseCase
	orderRepo   repository.OrderRepository
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
}

// NewOrderUseCase constrói o caso de uso de pedidos.
func NewOrderUseCase(
	txRunner appinv.TxRunner,
	movementUC *appinv.RegisterMovementUseCase,
	orderRepo repository.OrderRepository,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		movementUC:  movementUC,
		orderRepo:   orderRepo,
		partnerRepo: partnerRepo,
		productRepo: productRepo,
	}
}

// OrderItemInput linha do pedido na criação.
type OrderItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateOrderInput entrada para criar um pedido em rascunho.
type CreateOrderInput struct {
	Kind         string // COMPRA, VENDA
	PartnerID    string
	Document     string
	FreightTotal decimal.Decimal
	OtherCosts   decimal.Decimal
	Notes        string
	Items        []OrderItemInput
	UserID       string
}

// CreateDraft valida parceiro, produtos e itens e persiste o pedido em RASCUNHO.
func (uc *OrderUseCase) CreateDraft(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if input.Kind != entity.OrderKindCompra && input.Kind != entity.OrderKindVenda {
		return nil, domain.ErrInvalidInput
	}
	if input.PartnerID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.FreightTotal.IsNegative() || input.OtherCosts.IsNegative() {
		return nil, domain.ErrCustoInvalido
	}

	partner, err := uc.partnerRepo.GetByID(ctx, input.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	// compra exige fornecedor; venda exige cliente
	if input.Kind == entity.OrderKindCompra && !partner.IsFornecedor() {
		return nil, domain.ErrInvalidInput
	}
	if input.Kind == entity.OrderKindVenda && !partner.IsCliente() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		Kind:         input.Kind,
		Status:       entity.OrderStatusRascunho,
		PartnerID:    input.PartnerID,
		Document:     input.Document,
		FreightTotal: input.FreightTotal,
		OtherCosts:   input.OtherCosts,
		ItemsTotal:   decimal.Zero,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    input.UserID,
	}

	for _, item := range input.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrQuantidadeInvalida
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrCustoInvalido
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lineTotal := item.Quantity.Mul(item.UnitPrice)
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     lineTotal,
		})
		order.ItemsTotal = order.ItemsTotal.Add(lineTotal)
	}
	order.Total = order.ItemsTotal.Add(order.FreightTotal).Add(order.OtherCosts)

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm efetiva o pedido: registra as movimentações de todos os itens e
// muda a situação para CONFIRMADO na mesma transação. Qualquer item rejeitado
// (ex.: estoque insuficiente numa venda FIFO) desfaz o pedido inteiro.
func (uc *OrderUseCase) Confirm(ctx context.Context, orderID, userID string, fifoEnabled bool) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusRascunho {
		return nil, domain.ErrConflict
	}

	quantities := make([]decimal.Decimal, len(order.Items))
	for i, item := range order.Items {
		quantities[i] = item.Quantity
	}
	freightShares := Prorate(order.FreightTotal, quantities)
	otherShares := Prorate(order.OtherCosts, quantities)

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		lotRepo repository.StockLotRepository,
		consumptionRepo repository.LotConsumptionRepository,
		orderRepo repository.OrderRepository,
	) error {
		for i, item := range order.Items {
			input := appinv.MovementInput{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				Document:   order.Document,
				OriginKind: entity.MovementOriginPedido,
				OrderID:    &order.ID,
				UserID:     userID,
				Date:       now,
			}
			if order.IsCompra() {
				unitPrice := item.UnitPrice
				input.Type = entity.MovementTypeEntrada
				input.UnitValue = &unitPrice
				input.FreightCost = freightShares[i]
				input.OtherCosts = otherShares[i]
			} else {
				input.Type = entity.MovementTypeSaida
				input.FIFOEnabled = fifoEnabled
			}
			if _, err := uc.movementUC.RegisterInTx(ctx, movRepo, lotRepo, consumptionRepo, input); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(ctx, order.ID, entity.OrderStatusConfirmado, &now)
	})
	if err != nil {
		return nil, err
	}

	return uc.orderRepo.GetByID(ctx, orderID)
}

// GetByID devolve o pedido com itens.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista pedidos por tipo/situação.
func (uc *OrderUseCase) List(ctx context.Context, kind, status string, limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(ctx, kind, status, limit, offset)
}
