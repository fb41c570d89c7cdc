package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovementTypeEntrada = "ENTRADA" // entrada (compra, devolução, carga)
	MovementTypeSaida   = "SAIDA"   // saída (venda, baixa)
	MovementTypeAjuste  = "AJUSTE"  // ajuste manual, quantidade com sinal
)

// Origens de uma movimentação.
const (
	MovementOriginManual = "MANUAL" // lançada diretamente pela tela de estoque
	MovementOriginPedido = "PEDIDO" // gerada pela confirmação de um pedido
)

// StockMovement é um lançamento imutável do razão de estoque (append-only).
// Quantity carrega o sinal do tipo: positiva em ENTRADA, negativa em SAIDA,
// com sinal livre em AJUSTE. Após criada, a movimentação só é alterada pela
// reconciliação legada, que preenche os campos de custo reconhecido.
type StockMovement struct {
	ID                  string
	ProductID           string
	Type                string           // ENTRADA, SAIDA, AJUSTE
	Quantity            decimal.Decimal  // com sinal
	UnitValue           *decimal.Decimal // valor unitário informado (entradas)
	FreightCost         decimal.Decimal  // frete rateado para esta movimentação
	OtherCosts          decimal.Decimal
	TotalValue          decimal.Decimal  // base + frete + outros custos
	RecognizedUnitCost  *decimal.Decimal // custo unitário reconhecido (FIFO ou médio)
	RecognizedTotalCost *decimal.Decimal
	Document            string
	OriginKind          string  // MANUAL, PEDIDO
	OrderID             *string // pedido que gerou a movimentação, se houver
	RelatedMovementID   *string // movimentação relacionada (ex.: estorno)
	Reason              string
	Date                time.Time
	CreatedAt           time.Time
	CreatedBy           string // UserID
}

// IsSaida indica se a movimentação retira estoque (SAIDA ou AJUSTE negativo).
func (m *StockMovement) IsSaida() bool {
	return m.Type == MovementTypeSaida || (m.Type == MovementTypeAjuste && m.Quantity.IsNegative())
}
