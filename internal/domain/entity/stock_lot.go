package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origens possíveis de um lote de estoque.
const (
	LotOriginEntrada        = "ENTRADA"         // compra / entrada direta
	LotOriginAjustePositivo = "AJUSTE_POSITIVO" // ajuste manual positivo
	LotOriginDevolucao      = "DEVOLUCAO"       // devolução de cliente
	LotOriginImportacao     = "IMPORTACAO"      // carga inicial / migração de dados
)

// StockLot representa um lote discreto de aquisição: quantidade comprada em um
// momento a um custo unitário fixo. O custo nunca é reavaliado; o consumo FIFO
// apenas decrementa QuantityAvailable. Lotes zerados permanecem como trilha de
// auditoria, nunca são apagados.
type StockLot struct {
	ID                string
	ProductID         string
	QuantityInitial   decimal.Decimal // > 0, imutável
	QuantityAvailable decimal.Decimal // 0 <= disponível <= inicial
	UnitCost          decimal.Decimal // >= 0, imutável
	TotalValue        decimal.Decimal // QuantityInitial * UnitCost
	OriginKind        string          // ENTRADA, AJUSTE_POSITIVO, DEVOLUCAO, IMPORTACAO
	OriginMovementID  *string         // movimentação que criou o lote, se houver
	EntryDate         time.Time       // data de entrada: define a ordem FIFO
	Document          string          // nota fiscal / documento de referência
	CreatedAt         time.Time
}

// FullyConsumed indica que o lote foi totalmente consumido.
func (l *StockLot) FullyConsumed() bool {
	return l.QuantityAvailable.IsZero()
}
