package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotConsumption registra qual lote financiou qual saída e em que quantidade
// (tabela pivô movimentação x lote). Criada na mesma transação que decrementa
// o lote; nunca atualizada nem apagada. A presença de ao menos uma linha para
// uma SAIDA marca a movimentação como custeada por FIFO.
type LotConsumption struct {
	ID               string
	MovementID       string
	LotID            string
	QuantityConsumed decimal.Decimal // > 0
	UnitCostApplied  decimal.Decimal // copiado do lote no momento do consumo
	TotalCost        decimal.Decimal // QuantityConsumed * UnitCostApplied (4 casas)
	CreatedAt        time.Time
}
