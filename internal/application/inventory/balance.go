package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// ProductBalance é o saldo de um produto calculado pelas duas vias: soma dos
// disponíveis dos lotes e soma com sinal do razão de movimentações. As duas
// devem bater quando todas as movimentações estão custeadas por FIFO; dados
// legados ainda não reconciliados podem divergir.
type ProductBalance struct {
	ProductID       string          `json:"product_id"`
	LotQuantity     decimal.Decimal `json:"lot_quantity"`      // sum(quantity_available)
	LotTotalCost    decimal.Decimal `json:"lot_total_cost"`    // soma ponderada disponível * custo
	LedgerNet       decimal.Decimal `json:"ledger_net"`        // soma com sinal das movimentações
	Diverged        bool            `json:"diverged"`          // LotQuantity != LedgerNet
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"` // LotTotalCost / LotQuantity (0 se vazio)
}

// LowStockItem é um produto cuja disponibilidade em lotes está abaixo do
// estoque mínimo cadastrado.
type LowStockItem struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Available    decimal.Decimal `json:"available"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Deficit      decimal.Decimal `json:"deficit"`
}

// BalanceUseCase responde consultas de saldo somente-leitura sobre lotes e razão.
type BalanceUseCase struct {
	lotRepo     repository.StockLotRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewBalanceUseCase constrói o caso de uso de saldo.
func NewBalanceUseCase(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *BalanceUseCase {
	return &BalanceUseCase{lotRepo: lotRepo, movRepo: movRepo, productRepo: productRepo}
}

// GetProductBalance calcula o saldo do produto pelas duas vias e acusa divergência.
func (uc *BalanceUseCase) GetProductBalance(ctx context.Context, productID string) (*ProductBalance, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	lots, err := uc.lotRepo.ListEligible(ctx, productID)
	if err != nil {
		return nil, err
	}
	lotQty := decimal.Zero
	lotCost := decimal.Zero
	for _, lot := range lots {
		lotQty = lotQty.Add(lot.QuantityAvailable)
		lotCost = lotCost.Add(lot.QuantityAvailable.Mul(lot.UnitCost))
	}

	net, err := uc.movRepo.NetQuantityByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	balance := &ProductBalance{
		ProductID:    productID,
		LotQuantity:  lotQty,
		LotTotalCost: lotCost,
		LedgerNet:    net,
		Diverged:     !lotQty.Equal(net),
	}
	if lotQty.GreaterThan(decimal.Zero) {
		balance.AverageUnitCost = lotCost.Div(lotQty)
	} else {
		balance.AverageUnitCost = decimal.Zero
	}
	return balance, nil
}

// ListLowStock devolve os produtos ativos cuja disponibilidade em lotes está
// abaixo do estoque mínimo, ordenados pelo maior déficit primeiro.
func (uc *BalanceUseCase) ListLowStock(ctx context.Context) ([]LowStockItem, error) {
	products, err := uc.productRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}
	available, err := uc.lotRepo.SumAvailableByProduct(ctx, nil)
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItem, 0)
	for _, p := range products {
		if !p.Active || !p.MinimumStock.GreaterThan(decimal.Zero) {
			continue
		}
		avail := available[p.ID]
		if avail.GreaterThanOrEqual(p.MinimumStock) {
			continue
		}
		items = append(items, LowStockItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Available:    avail,
			MinimumStock: p.MinimumStock,
			Deficit:      p.MinimumStock.Sub(avail),
		})
	}
	// maior déficit primeiro
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Deficit.GreaterThan(items[j].Deficit)
	})
	return items, nil
}
