package inventory_test

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

func newRegisterUC(store *memStore) *appinv.RegisterMovementUseCase {
	return appinv.NewRegisterMovementUseCase(&fakeTxRunner{store: store}, &fakeProductRepo{store: store})
}

func seedProduct(store *memStore, id string) {
	store.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Produto " + id, Active: true}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func entradaInput(productID string, qty, unitValue, freight float64) appinv.MovementInput {
	return appinv.MovementInput{
		ProductID:   productID,
		Type:        entity.MovementTypeEntrada,
		Quantity:    dec(qty),
		UnitValue:   decPtr(unitValue),
		FreightCost: dec(freight),
		UserID:      "user-1",
	}
}

func saidaInput(productID string, qty float64, fifo bool) appinv.MovementInput {
	return appinv.MovementInput{
		ProductID:   productID,
		Type:        entity.MovementTypeSaida,
		Quantity:    dec(qty),
		FIFOEnabled: fifo,
		UserID:      "user-1",
	}
}

func TestRegisterMovement_EntradaCriaLote(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)

	// Entrada de 7 un a 10.00 com frete 3.50: custo unitário 10.50, total 73.50.
	mov, err := uc.RegisterMovement(context.Background(), entradaInput("p1", 7, 10.0, 3.5))
	require.NoError(t, err)
	require.NotNil(t, mov)

	require.NotNil(t, mov.RecognizedUnitCost)
	assert.True(t, mov.RecognizedUnitCost.Equal(dec(10.5)), "custo reconhecido: %s", mov.RecognizedUnitCost)
	assert.True(t, mov.TotalValue.Equal(dec(73.5)))

	require.Len(t, store.lots, 1)
	for _, lot := range store.lots {
		assert.True(t, lot.QuantityInitial.Equal(dec(7)))
		assert.True(t, lot.QuantityAvailable.Equal(dec(7)))
		assert.True(t, lot.UnitCost.Equal(dec(10.5)))
		assert.True(t, lot.TotalValue.Equal(dec(73.5)))
		assert.Equal(t, entity.LotOriginEntrada, lot.OriginKind)
		require.NotNil(t, lot.OriginMovementID)
		assert.Equal(t, mov.ID, *lot.OriginMovementID)
	}
}

func TestRegisterMovement_CenarioFIFOCompleto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)
	ctx := context.Background()

	// Entrada de 4 un a custo 9.
	_, err := uc.RegisterMovement(ctx, entradaInput("p1", 4, 9.0, 0))
	require.NoError(t, err)

	// SAIDA de 1: lote cai para 3.
	mov1, err := uc.RegisterMovement(ctx, saidaInput("p1", 1, true))
	require.NoError(t, err)
	assert.True(t, lotAvailable(store, "p1").Equal(dec(3)))
	require.NotNil(t, mov1.RecognizedTotalCost)
	assert.True(t, mov1.RecognizedTotalCost.Equal(dec(9)))

	// SAIDA de 3: lote zera.
	_, err = uc.RegisterMovement(ctx, saidaInput("p1", 3, true))
	require.NoError(t, err)
	assert.True(t, lotAvailable(store, "p1").IsZero())

	pivotsBefore := len(store.consumptions)

	// SAIDA de 1 sem estoque: rejeita, lote permanece zerado, nenhum pivô novo.
	_, err = uc.RegisterMovement(ctx, saidaInput("p1", 1, true))
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
	assert.True(t, lotAvailable(store, "p1").IsZero())
	assert.Len(t, store.consumptions, pivotsBefore)

	// Conservação: soma dos consumos == soma das magnitudes das saídas.
	consumed := decimal.Zero
	for _, c := range store.consumptions {
		consumed = consumed.Add(c.QuantityConsumed)
	}
	assert.True(t, consumed.Equal(dec(4)))
}

func TestRegisterMovement_FIFOConsomeLoteMaisAntigoPrimeiro(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)
	ctx := context.Background()

	antiga := appinv.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada,
		Quantity: dec(10), UnitValue: decPtr(10),
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), UserID: "u",
	}
	nova := appinv.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada,
		Quantity: dec(10), UnitValue: decPtr(14),
		Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), UserID: "u",
	}
	_, err := uc.RegisterMovement(ctx, nova)
	require.NoError(t, err)
	_, err = uc.RegisterMovement(ctx, antiga)
	require.NoError(t, err)

	// Saída de 12: 10 do lote antigo a 10 + 2 do novo a 14 = 128.
	mov, err := uc.RegisterMovement(ctx, saidaInput("p1", 12, true))
	require.NoError(t, err)
	require.NotNil(t, mov.RecognizedTotalCost)
	assert.True(t, mov.RecognizedTotalCost.Equal(dec(128)), "custo: %s", mov.RecognizedTotalCost)
}

func TestRegisterMovement_SaidaLegadaCustoMedio(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)
	ctx := context.Background()

	// Duas entradas: 5 @ 10 e 5 @ 12.
	_, err := uc.RegisterMovement(ctx, entradaInput("p1", 5, 10.0, 0))
	require.NoError(t, err)
	_, err = uc.RegisterMovement(ctx, entradaInput("p1", 5, 12.0, 0))
	require.NoError(t, err)

	// Saída legada de 4: custo médio 11.00, total 44.00; lotes intactos.
	mov, err := uc.RegisterMovement(ctx, saidaInput("p1", 4, false))
	require.NoError(t, err)
	require.NotNil(t, mov.RecognizedUnitCost)
	assert.True(t, mov.RecognizedUnitCost.Equal(dec(11)), "unitário: %s", mov.RecognizedUnitCost)
	assert.True(t, mov.RecognizedTotalCost.Equal(dec(44)), "total: %s", mov.RecognizedTotalCost)

	assert.True(t, lotAvailable(store, "p1").Equal(dec(10)), "caminho legado não toca lotes")
	assert.Empty(t, store.consumptions)
}

func TestRegisterMovement_SaidaLegadaSemSaldo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, entradaInput("p1", 2, 10.0, 0))
	require.NoError(t, err)

	_, err = uc.RegisterMovement(ctx, saidaInput("p1", 5, false))
	assert.ErrorIs(t, err, domain.ErrEstoqueInsuficiente)
}

func TestRegisterMovement_AjustePositivoCriaLote(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)

	_, err := uc.RegisterMovement(context.Background(), appinv.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAjuste,
		Quantity:  dec(5),
		UnitValue: decPtr(8),
		Reason:    "inventário físico",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	require.Len(t, store.lots, 1)
	for _, lot := range store.lots {
		assert.Equal(t, entity.LotOriginAjustePositivo, lot.OriginKind)
		assert.True(t, lot.UnitCost.Equal(dec(8)))
	}
}

func TestRegisterMovement_AjusteNegativoConsomeFIFO(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, entradaInput("p1", 10, 5.0, 0))
	require.NoError(t, err)

	mov, err := uc.RegisterMovement(ctx, appinv.MovementInput{
		ProductID:   "p1",
		Type:        entity.MovementTypeAjuste,
		Quantity:    dec(-4),
		FIFOEnabled: true,
		Reason:      "quebra",
		UserID:      "user-1",
	})
	require.NoError(t, err)
	assert.True(t, mov.Quantity.Equal(dec(-4)), "ajuste preserva o sinal")
	assert.True(t, lotAvailable(store, "p1").Equal(dec(6)))
	assert.Len(t, store.consumptions, 1)
}

func TestRegisterMovement_Validacao(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1")
	uc := newRegisterUC(store)
	ctx := context.Background()

	// Quantidade não positiva.
	_, err := uc.RegisterMovement(ctx, saidaInput("p1", 0, true))
	assert.ErrorIs(t, err, domain.ErrQuantidadeInvalida)

	// Entrada sem valor unitário.
	in := entradaInput("p1", 1, 0, 0)
	in.UnitValue = nil
	_, err = uc.RegisterMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrCustoInvalido)

	// Custo negativo.
	_, err = uc.RegisterMovement(ctx, entradaInput("p1", 1, -5, 0))
	assert.ErrorIs(t, err, domain.ErrCustoInvalido)

	// Produto inexistente.
	_, err = uc.RegisterMovement(ctx, saidaInput("nao-existe", 1, true))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nenhuma escrita aconteceu.
	assert.Empty(t, store.movements)
	assert.Empty(t, store.lots)
}

// lotAvailable soma o disponível de todos os lotes do produto.
func lotAvailable(store *memStore, productID string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range store.lots {
		if lot.ProductID == productID {
			total = total.Add(lot.QuantityAvailable)
		}
	}
	return total
}
