package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/gestorlite/erp-api/internal/application/inventory"
	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newOrderUC(store *memStore) *OrderUseCase {
	runner := &fakeTxRunner{store: store}
	productRepo := &fakeProductRepo{store: store}
	movementUC := appinv.NewRegisterMovementUseCase(runner, productRepo)
	return NewOrderUseCase(
		runner,
		movementUC,
		&fakeOrderRepo{store: store},
		&fakePartnerRepo{store: store},
		productRepo,
	)
}

func seedProduct(store *memStore, id string) {
	store.products[id] = &entity.Product{
		ID:     id,
		SKU:    "SKU-" + id,
		Name:   "Produto " + id,
		Active: true,
	}
}

func seedPartner(store *memStore, id, kind string) {
	store.partners[id] = &entity.Partner{
		ID:     id,
		Name:   "Parceiro " + id,
		Kind:   kind,
		Active: true,
	}
}

func seedLot(store *memStore, id, productID string, qty, unitCost decimal.Decimal, entry time.Time) {
	store.lots[id] = &entity.StockLot{
		ID:                id,
		ProductID:         productID,
		QuantityInitial:   qty,
		QuantityAvailable: qty,
		UnitCost:          unitCost,
		TotalValue:        qty.Mul(unitCost),
		OriginKind:        entity.LotOriginEntrada,
		EntryDate:         entry,
	}
}

func TestCreateDraft_CalculaTotais(t *testing.T) {
	store := newMemStore()
	seedPartner(store, "forn-1", entity.PartnerKindFornecedor)
	seedProduct(store, "prod-1")
	seedProduct(store, "prod-2")
	uc := newOrderUC(store)

	order, err := uc.CreateDraft(context.Background(), CreateOrderInput{
		Kind:         entity.OrderKindCompra,
		PartnerID:    "forn-1",
		FreightTotal: dec("5"),
		Items: []OrderItemInput{
			{ProductID: "prod-1", Quantity: dec("2"), UnitPrice: dec("10")},
			{ProductID: "prod-2", Quantity: dec("1"), UnitPrice: dec("20")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusRascunho, order.Status)
	assert.True(t, order.ItemsTotal.Equal(dec("40")), "ItemsTotal = %s", order.ItemsTotal)
	assert.True(t, order.Total.Equal(dec("45")), "Total = %s", order.Total)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Total.Equal(dec("20")))
}

func TestCreateDraft_Validacao(t *testing.T) {
	store := newMemStore()
	seedPartner(store, "cli-1", entity.PartnerKindCliente)
	seedProduct(store, "prod-1")
	uc := newOrderUC(store)
	ctx := context.Background()

	// compra exige fornecedor
	_, err := uc.CreateDraft(ctx, CreateOrderInput{
		Kind:      entity.OrderKindCompra,
		PartnerID: "cli-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// quantidade não positiva
	_, err = uc.CreateDraft(ctx, CreateOrderInput{
		Kind:      entity.OrderKindVenda,
		PartnerID: "cli-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("0"), UnitPrice: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrQuantidadeInvalida)

	// produto inexistente
	_, err = uc.CreateDraft(ctx, CreateOrderInput{
		Kind:      entity.OrderKindVenda,
		PartnerID: "cli-1",
		Items:     []OrderItemInput{{ProductID: "prod-x", Quantity: dec("1"), UnitPrice: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// sem itens
	_, err = uc.CreateDraft(ctx, CreateOrderInput{Kind: entity.OrderKindVenda, PartnerID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_CompraRateiaFretePorQuantidade(t *testing.T) {
	store := newMemStore()
	seedPartner(store, "forn-1", entity.PartnerKindFornecedor)
	seedProduct(store, "prod-1")
	seedProduct(store, "prod-2")
	uc := newOrderUC(store)
	ctx := context.Background()

	draft, err := uc.CreateDraft(ctx, CreateOrderInput{
		Kind:         entity.OrderKindCompra,
		PartnerID:    "forn-1",
		FreightTotal: dec("5"),
		Items: []OrderItemInput{
			{ProductID: "prod-1", Quantity: dec("2"), UnitPrice: dec("10")},
			{ProductID: "prod-2", Quantity: dec("1"), UnitPrice: dec("20")},
		},
	})
	require.NoError(t, err)

	confirmed, err := uc.Confirm(ctx, draft.ID, "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmado, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	movs, err := (&fakeMovementRepo{store: store}).ListByOrder(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)

	byProduct := map[string]*entity.StockMovement{}
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeEntrada, m.Type)
		assert.Equal(t, entity.MovementOriginPedido, m.OriginKind)
		byProduct[m.ProductID] = m
	}

	// frete 5 rateado por quantidade (2 de 3 e 1 de 3)
	m1 := byProduct["prod-1"]
	m2 := byProduct["prod-2"]
	require.NotNil(t, m1)
	require.NotNil(t, m2)
	assert.True(t, m1.FreightCost.Equal(dec("3.33")), "frete prod-1 = %s", m1.FreightCost)
	assert.True(t, m2.FreightCost.Equal(dec("1.67")), "frete prod-2 = %s", m2.FreightCost)

	// total da movimentação = base + frete rateado
	assert.True(t, m1.TotalValue.Equal(dec("23.33")), "total prod-1 = %s", m1.TotalValue)
	assert.True(t, m2.TotalValue.Equal(dec("21.67")), "total prod-2 = %s", m2.TotalValue)

	// cada entrada criou um lote com o custo unitário carregado
	require.Len(t, store.lots, 2)
	for _, lot := range store.lots {
		if lot.ProductID == "prod-1" {
			assert.True(t, lot.UnitCost.Equal(dec("11.665")), "custo lote prod-1 = %s", lot.UnitCost)
		}
	}
}

func TestConfirm_VendaFIFOConsomeLotes(t *testing.T) {
	store := newMemStore()
	seedPartner(store, "cli-1", entity.PartnerKindCliente)
	seedProduct(store, "prod-1")
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	seedLot(store, "lote-1", "prod-1", dec("5"), dec("8"), base)
	seedLot(store, "lote-2", "prod-1", dec("5"), dec("9"), base.Add(24*time.Hour))
	uc := newOrderUC(store)
	ctx := context.Background()

	draft, err := uc.CreateDraft(ctx, CreateOrderInput{
		Kind:      entity.OrderKindVenda,
		PartnerID: "cli-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("7"), UnitPrice: dec("15")}},
	})
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, draft.ID, "user-1", true)
	require.NoError(t, err)

	// 5 @ 8 + 2 @ 9 = 58
	movs, _ := (&fakeMovementRepo{store: store}).ListByOrder(ctx, draft.ID)
	require.Len(t, movs, 1)
	require.NotNil(t, movs[0].RecognizedTotalCost)
	assert.True(t, movs[0].RecognizedTotalCost.Equal(dec("58")), "custo reconhecido = %s", movs[0].RecognizedTotalCost)

	assert.True(t, store.lots["lote-1"].QuantityAvailable.IsZero())
	assert.True(t, store.lots["lote-2"].QuantityAvailable.Equal(dec("3")))
	assert.Len(t, store.consumptions, 2)
}

func TestConfirm_VendaSemEstoqueRejeita(t *testing.T) {
	store := newMemStore()
	seedPartner(store, "cli-1", entity.PartnerKindCliente)
	seedProduct(store, "prod-1")
	seedLot(store, "lote-1", "prod-1", dec("2"), dec("8"), time.Now())
	uc := newOrderUC(store)
	ctx := context.Background()

	draft, err := uc.CreateDraft(ctx, CreateOrderInput{
		Kind:      entity.OrderKindVenda,
		PartnerID: "cli-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("3"), UnitPrice: dec("15")}},
	})
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, draft.ID, "user-1", true)
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)

	// nada consumido, pedido segue em rascunho
	assert.True(t, store.lots["lote-1"].QuantityAvailable.Equal(dec("2")))
	assert.Empty(t, store.consumptions)
	assert.Equal(t, entity.OrderStatusRascunho, store.orders[draft.ID].Status)
}

func TestConfirm_SomenteRascunho(t *testing.T) {
	store := newMemStore()
	seedPartner(store, "cli-1", entity.PartnerKindCliente)
	seedProduct(store, "prod-1")
	seedLot(store, "lote-1", "prod-1", dec("10"), dec("8"), time.Now())
	uc := newOrderUC(store)
	ctx := context.Background()

	draft, err := uc.CreateDraft(ctx, CreateOrderInput{
		Kind:      entity.OrderKindVenda,
		PartnerID: "cli-1",
		Items:     []OrderItemInput{{ProductID: "prod-1", Quantity: dec("1"), UnitPrice: dec("15")}},
	})
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, draft.ID, "user-1", true)
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, draft.ID, "user-1", true)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Confirm(ctx, "inexistente", "user-1", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
