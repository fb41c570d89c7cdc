package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// Predicados de elegibilidade da reconciliação legada. Cada cláusula é uma
// função nomeada e testável isoladamente; a condição combinada vive em
// EligibleForReconciliation. Todas operam sobre dados já carregados:
// movimentações do pedido, contagem de consumos por movimentação e
// disponibilidade de lotes por produto.

// AnySaida: o pedido tem ao menos uma movimentação SAIDA.
func AnySaida(movements []*entity.StockMovement) bool {
	for _, m := range movements {
		if m.Type == entity.MovementTypeSaida {
			return true
		}
	}
	return false
}

// AnySaidaWithoutConsumption: ao menos uma SAIDA sem linhas de consumo de lote
// (ou seja, ainda custeada pelo caminho legado).
func AnySaidaWithoutConsumption(movements []*entity.StockMovement, consumptionCount map[string]int) bool {
	for _, m := range movements {
		if m.Type == entity.MovementTypeSaida && consumptionCount[m.ID] == 0 {
			return true
		}
	}
	return false
}

// ItemsAllCovered: para cada item do pedido, o disponível somado dos lotes do
// produto cobre a quantidade do item. Cobertura parcial não conta: a
// reconciliação é tudo-ou-nada por pedido.
func ItemsAllCovered(items []entity.OrderItem, availableByProduct map[string]decimal.Decimal) bool {
	for _, item := range items {
		if availableByProduct[item.ProductID].LessThan(item.Quantity) {
			return false
		}
	}
	return true
}

// FullyFIFOAccounted: toda SAIDA do pedido tem ao menos um consumo de lote e
// custo total reconhecido positivo. Pedido sem SAIDA não é "totalmente FIFO".
func FullyFIFOAccounted(movements []*entity.StockMovement, consumptionCount map[string]int) bool {
	any := false
	for _, m := range movements {
		if m.Type != entity.MovementTypeSaida {
			continue
		}
		any = true
		if consumptionCount[m.ID] == 0 {
			return false
		}
		if m.RecognizedTotalCost == nil || !m.RecognizedTotalCost.GreaterThan(decimal.Zero) {
			return false
		}
	}
	return any
}

// EligibleForReconciliation combina as quatro cláusulas: pedido de venda com
// saídas, ao menos uma delas legada, itens integralmente cobertos pelo
// estoque atual e ainda não totalmente custeado por FIFO. Pedidos de compra
// nunca são elegíveis (criam lotes, não consomem).
func EligibleForReconciliation(
	order *entity.Order,
	movements []*entity.StockMovement,
	consumptionCount map[string]int,
	availableByProduct map[string]decimal.Decimal,
) bool {
	if order.IsCompra() {
		return false
	}
	return AnySaida(movements) &&
		AnySaidaWithoutConsumption(movements, consumptionCount) &&
		ItemsAllCovered(order.Items, availableByProduct) &&
		!FullyFIFOAccounted(movements, consumptionCount)
}

// ClassifyFIFOState devolve o estado de custeio exposto na consulta de
// pedidos: "fifo", "eligible" ou "legacy". Pedidos de compra são "fifo" por
// definição.
func ClassifyFIFOState(
	order *entity.Order,
	movements []*entity.StockMovement,
	consumptionCount map[string]int,
	availableByProduct map[string]decimal.Decimal,
) string {
	if order.IsCompra() {
		return entity.OrderFIFOStateFifo
	}
	if FullyFIFOAccounted(movements, consumptionCount) {
		return entity.OrderFIFOStateFifo
	}
	if EligibleForReconciliation(order, movements, consumptionCount, availableByProduct) {
		return entity.OrderFIFOStateEligible
	}
	return entity.OrderFIFOStateLegacy
}
