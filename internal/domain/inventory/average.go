package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// AverageEntryCost calcula o custo médio ponderado legado a partir do razão de
// movimentações: sum(valor_total) / sum(quantidade) sobre as ENTRADAs do
// produto. Recalcular do histórico a cada saída legada é O(n) sobre as
// entradas, mas é autocorretivo e o caminho legado está sendo descontinuado.
func AverageEntryCost(movements []*entity.StockMovement) decimal.Decimal {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, m := range movements {
		if m.Type != entity.MovementTypeEntrada {
			continue
		}
		totalQty = totalQty.Add(m.Quantity)
		totalValue = totalValue.Add(m.TotalValue)
	}
	if !totalQty.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return totalValue.Div(totalQty)
}

// NetQuantity soma as quantidades com sinal do razão, a "segunda via" do saldo
// de estoque. Deve bater com a soma dos disponíveis dos lotes quando todas as
// movimentações estiverem custeadas por FIFO.
func NetQuantity(movements []*entity.StockMovement) decimal.Decimal {
	net := decimal.Zero
	for _, m := range movements {
		net = net.Add(m.Quantity)
	}
	return net
}
