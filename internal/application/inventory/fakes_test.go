package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos portos de persistência, compartilhando um memStore.
// O TxRunner fake apenas repassa os repositórios: o planejamento é puro e
// falha antes de qualquer escrita, então os testes de rejeição não dependem
// de rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[string]*entity.Product
	lots         map[string]*entity.StockLot
	movements    map[string]*entity.StockMovement
	consumptions []*entity.LotConsumption
	orders       map[string]*entity.Order
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		lots:      make(map[string]*entity.StockLot),
		movements: make(map[string]*entity.StockMovement),
		orders:    make(map[string]*entity.Order),
	}
}

type fakeTxRunner struct{ store *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lotRepo repository.StockLotRepository,
	consumptionRepo repository.LotConsumptionRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(
		&fakeMovementRepo{store: r.store},
		&fakeLotRepo{store: r.store},
		&fakeConsumptionRepo{store: r.store},
		&fakeOrderRepo{store: r.store},
	)
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

type fakeLotRepo struct{ store *memStore }

var _ repository.StockLotRepository = (*fakeLotRepo)(nil)

func (r *fakeLotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	cp := *lot
	r.store.lots[lot.ID] = &cp
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.StockLot, error) {
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *fakeLotRepo) ListEligible(_ context.Context, productID string) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, lot := range r.store.lots {
		if lot.ProductID == productID && lot.QuantityAvailable.GreaterThan(decimal.Zero) {
			cp := *lot
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeLotRepo) ListEligibleForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	return r.ListEligible(ctx, productID)
}

func (r *fakeLotRepo) DecrementAvailable(_ context.Context, lotID string, amount decimal.Decimal) (*entity.StockLot, error) {
	lot, ok := r.store.lots[lotID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if lot.QuantityAvailable.LessThan(amount) {
		return nil, domain.ErrInconsistenciaInterna
	}
	lot.QuantityAvailable = lot.QuantityAvailable.Sub(amount)
	cp := *lot
	return &cp, nil
}

func (r *fakeLotRepo) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, lot := range r.store.lots {
		if lot.ProductID == productID {
			cp := *lot
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) SumAvailableByProduct(_ context.Context, productIDs []string) (map[string]decimal.Decimal, error) {
	wanted := map[string]bool{}
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := make(map[string]decimal.Decimal)
	for _, lot := range r.store.lots {
		if len(wanted) > 0 && !wanted[lot.ProductID] {
			continue
		}
		out[lot.ProductID] = out[lot.ProductID].Add(lot.QuantityAvailable)
	}
	return out, nil
}

// ── Movimentações ─────────────────────────────────────────────────────────────

type fakeMovementRepo struct{ store *memStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	cp := *mov
	r.store.movements[mov.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	mov, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *mov
	return &cp, nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListEntradasByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID && m.Type == entity.MovementTypeEntrada {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMovementRepo) UpdateRecognizedCost(_ context.Context, movementID string, unitCost, totalCost decimal.Decimal) error {
	mov, ok := r.store.movements[movementID]
	if !ok {
		return domain.ErrNotFound
	}
	mov.RecognizedUnitCost = &unitCost
	mov.RecognizedTotalCost = &totalCost
	return nil
}

func (r *fakeMovementRepo) NetQuantityByProduct(_ context.Context, productID string) (decimal.Decimal, error) {
	net := decimal.Zero
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			net = net.Add(m.Quantity)
		}
	}
	return net, nil
}

// ── Consumos de lote ──────────────────────────────────────────────────────────

type fakeConsumptionRepo struct{ store *memStore }

var _ repository.LotConsumptionRepository = (*fakeConsumptionRepo)(nil)

func (r *fakeConsumptionRepo) Create(_ context.Context, c *entity.LotConsumption) error {
	cp := *c
	r.store.consumptions = append(r.store.consumptions, &cp)
	return nil
}

func (r *fakeConsumptionRepo) ListByMovement(_ context.Context, movementID string) ([]*entity.LotConsumption, error) {
	var out []*entity.LotConsumption
	for _, c := range r.store.consumptions {
		if c.MovementID == movementID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) CountByMovements(_ context.Context, movementIDs []string) (map[string]int, error) {
	wanted := map[string]bool{}
	for _, id := range movementIDs {
		wanted[id] = true
	}
	out := make(map[string]int)
	for _, c := range r.store.consumptions {
		if wanted[c.MovementID] {
			out[c.MovementID]++
		}
	}
	return out, nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

type fakeOrderRepo struct{ store *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	cp := *order
	r.store.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID, status string, confirmedAt *time.Time) error {
	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	order.ConfirmedAt = confirmedAt
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, kind, status string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.store.orders {
		if (kind == "" || o.Kind == kind) && (status == "" || o.Status == status) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListReconciliationCandidates(ctx context.Context, limit int) ([]*entity.Order, error) {
	consRepo := &fakeConsumptionRepo{store: r.store}
	movRepo := &fakeMovementRepo{store: r.store}
	var out []*entity.Order
	for _, o := range r.store.orders {
		if o.Kind != entity.OrderKindVenda || o.Status != entity.OrderStatusConfirmado {
			continue
		}
		movs, _ := movRepo.ListByOrder(ctx, o.ID)
		var ids []string
		for _, m := range movs {
			ids = append(ids, m.ID)
		}
		counts, _ := consRepo.CountByMovements(ctx, ids)
		legacy := false
		for _, m := range movs {
			if m.Type == entity.MovementTypeSaida && counts[m.ID] == 0 {
				legacy = true
			}
		}
		if legacy {
			cp := *o
			out = append(out, &cp)
		}
		if len(out) >= limit {
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── Produtos ──────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
