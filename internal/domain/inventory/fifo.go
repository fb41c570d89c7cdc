// Package inventory contém a lógica pura do motor de custeio FIFO:
// planejamento de consumo de lotes, custo médio legado e os predicados de
// elegibilidade da reconciliação. Nenhuma função deste pacote toca o banco;
// a persistência é responsabilidade do caso de uso, dentro de uma transação.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// Casas decimais do custo de cada linha de consumo. O total do plano é a soma
// exata das linhas arredondadas, nunca rederivado da média, para evitar
// deriva de centavos.
const lineCostScale = 4

// ConsumptionLine é a fatia de um lote consumida por uma saída.
type ConsumptionLine struct {
	LotID            string
	QuantityConsumed decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal // QuantityConsumed * UnitCost, 4 casas
}

// ConsumptionPlan é o resultado do planejamento FIFO: quais lotes, quanto de
// cada um e a que custo. O plano não altera estado algum.
type ConsumptionPlan struct {
	Lines                   []ConsumptionLine
	TotalCost               decimal.Decimal
	WeightedAverageUnitCost decimal.Decimal // TotalCost / quantidade pedida
}

// PlanConsumption percorre os lotes elegíveis do mais antigo para o mais novo
// (data de entrada, desempate por id) e acumula consumo até cobrir quantity.
// Retorna ErrQuantidadeInvalida se quantity <= 0 e ErrEstoqueInsuficiente se
// o disponível somado dos lotes não cobre a quantidade; nesse caso nenhuma
// mutação parcial existe, pois o planejamento é puro.
func PlanConsumption(lots []*entity.StockLot, quantity decimal.Decimal) (*ConsumptionPlan, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrQuantidadeInvalida
	}

	ordered := make([]*entity.StockLot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].EntryDate.Equal(ordered[j].EntryDate) {
			return ordered[i].EntryDate.Before(ordered[j].EntryDate)
		}
		return ordered[i].ID < ordered[j].ID
	})

	remaining := quantity
	plan := &ConsumptionPlan{TotalCost: decimal.Zero}

	for _, lot := range ordered {
		if remaining.IsZero() {
			break
		}
		if !lot.QuantityAvailable.GreaterThan(decimal.Zero) {
			continue
		}
		consumed := decimal.Min(lot.QuantityAvailable, remaining)
		lineTotal := consumed.Mul(lot.UnitCost).Round(lineCostScale)
		plan.Lines = append(plan.Lines, ConsumptionLine{
			LotID:            lot.ID,
			QuantityConsumed: consumed,
			UnitCost:         lot.UnitCost,
			TotalCost:        lineTotal,
		})
		plan.TotalCost = plan.TotalCost.Add(lineTotal)
		remaining = remaining.Sub(consumed)
	}

	if remaining.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEstoqueInsuficiente
	}

	plan.WeightedAverageUnitCost = plan.TotalCost.Div(quantity)
	return plan, nil
}

// EntryUnitCost calcula o custo unitário de um lote criado por entrada:
// (quantidade * valor unitário + frete + outros custos) / quantidade.
func EntryUnitCost(quantity, unitValue, freight, otherCosts decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrQuantidadeInvalida
	}
	if unitValue.IsNegative() || freight.IsNegative() || otherCosts.IsNegative() {
		return decimal.Zero, domain.ErrCustoInvalido
	}
	total := quantity.Mul(unitValue).Add(freight).Add(otherCosts)
	return total.Div(quantity), nil
}
