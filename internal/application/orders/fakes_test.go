package orders

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// memStore guarda o estado em memória compartilhado pelos repositórios falsos.
type memStore struct {
	products     map[string]*entity.Product
	partners     map[string]*entity.Partner
	orders       map[string]*entity.Order
	lots         map[string]*entity.StockLot
	movements    map[string]*entity.StockMovement
	consumptions map[string]*entity.LotConsumption
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[string]*entity.Product{},
		partners:     map[string]*entity.Partner{},
		orders:       map[string]*entity.Order{},
		lots:         map[string]*entity.StockLot{},
		movements:    map[string]*entity.StockMovement{},
		consumptions: map[string]*entity.LotConsumption{},
	}
}

// fakeTxRunner entrega os repositórios falsos direto, sem transação real. Os
// testes que exercitam falha contam com o planejamento puro rejeitar antes de
// qualquer escrita.
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

type fakeProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.store.products[id], nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	return out, nil
}

type fakePartnerRepo struct{ store *memStore }

var _ repository.PartnerRepository = (*fakePartnerRepo)(nil)

func (r *fakePartnerRepo) Create(_ context.Context, p *entity.Partner) error {
	r.store.partners[p.ID] = p
	return nil
}

func (r *fakePartnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	return r.store.partners[id], nil
}

func (r *fakePartnerRepo) GetByDocument(_ context.Context, document string) (*entity.Partner, error) {
	for _, p := range r.store.partners {
		if p.Document == document {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePartnerRepo) Update(_ context.Context, p *entity.Partner) error {
	r.store.partners[p.ID] = p
	return nil
}

func (r *fakePartnerRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Partner, error) {
	out := make([]*entity.Partner, 0, len(r.store.partners))
	for _, p := range r.store.partners {
		out = append(out, p)
	}
	return out, nil
}

type fakeOrderRepo struct{ store *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.store.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.store.orders[id], nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID, status string, confirmedAt *time.Time) error {
	o, ok := r.store.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.ConfirmedAt = confirmedAt
	o.UpdatedAt = time.Now()
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, kind, status string, _, _ int) ([]*entity.Order, error) {
	out := []*entity.Order{}
	for _, o := range r.store.orders {
		if kind != "" && o.Kind != kind {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListReconciliationCandidates(_ context.Context, _ int) ([]*entity.Order, error) {
	return nil, nil
}

type fakeLotRepo struct{ store *memStore }

var _ repository.StockLotRepository = (*fakeLotRepo)(nil)

func (r *fakeLotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	r.store.lots[lot.ID] = lot
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.StockLot, error) {
	return r.store.lots[id], nil
}

func (r *fakeLotRepo) ListEligible(_ context.Context, productID string) ([]*entity.StockLot, error) {
	out := []*entity.StockLot{}
	for _, lot := range r.store.lots {
		if lot.ProductID == productID && lot.QuantityAvailable.GreaterThan(decimal.Zero) {
			out = append(out, lot)
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
	return lot, nil
}

func (r *fakeLotRepo) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.StockLot, error) {
	out := []*entity.StockLot{}
	for _, lot := range r.store.lots {
		if lot.ProductID == productID {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) SumAvailableByProduct(_ context.Context, productIDs []string) (map[string]decimal.Decimal, error) {
	wanted := map[string]bool{}
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := map[string]decimal.Decimal{}
	for _, lot := range r.store.lots {
		if len(wanted) > 0 && !wanted[lot.ProductID] {
			continue
		}
		out[lot.ProductID] = out[lot.ProductID].Add(lot.QuantityAvailable)
	}
	return out, nil
}

type fakeMovementRepo struct{ store *memStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	r.store.movements[mov.ID] = mov
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	return r.store.movements[id], nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListEntradasByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.store.movements {
		if m.ProductID == productID && m.Type == entity.MovementTypeEntrada {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.store.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMovementRepo) UpdateRecognizedCost(_ context.Context, movementID string, unitCost, totalCost decimal.Decimal) error {
	m, ok := r.store.movements[movementID]
	if !ok {
		return domain.ErrNotFound
	}
	m.RecognizedUnitCost = &unitCost
	m.RecognizedTotalCost = &totalCost
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

type fakeConsumptionRepo struct{ store *memStore }

var _ repository.LotConsumptionRepository = (*fakeConsumptionRepo)(nil)

func (r *fakeConsumptionRepo) Create(_ context.Context, c *entity.LotConsumption) error {
	r.store.consumptions[c.ID] = c
	return nil
}

func (r *fakeConsumptionRepo) ListByMovement(_ context.Context, movementID string) ([]*entity.LotConsumption, error) {
	out := []*entity.LotConsumption{}
	for _, c := range r.store.consumptions {
		if c.MovementID == movementID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) CountByMovements(_ context.Context, movementIDs []string) (map[string]int, error) {
	wanted := map[string]bool{}
	for _, id := range movementIDs {
		wanted[id] = true
	}
	out := map[string]int{}
	for _, c := range r.store.consumptions {
		if wanted[c.MovementID] {
			out[c.MovementID]++
		}
	}
	return out, nil
}
