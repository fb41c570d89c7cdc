package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido.
const (
	OrderKindCompra = "COMPRA"
	OrderKindVenda  = "VENDA"
)

// Situações de pedido.
const (
	OrderStatusRascunho   = "RASCUNHO"
	OrderStatusConfirmado = "CONFIRMADO"
	OrderStatusCancelado  = "CANCELADO"
)

// Estados de custeio FIFO de um pedido, expostos na consulta de pedidos.
// Pedidos de compra são trivialmente "fifo" (criam lotes, não consomem).
const (
	OrderFIFOStateFifo     = "fifo"     // todas as saídas custeadas por lotes
	OrderFIFOStateEligible = "eligible" // legado, mas reconciliável com o estoque atual
	OrderFIFOStateLegacy   = "legacy"   // legado e sem cobertura para reconciliar
)

// Order representa um pedido de compra ou venda. A confirmação gera uma
// movimentação de estoque por item através do registrador de movimentações.
type Order struct {
	ID           string
	Kind         string // COMPRA, VENDA
	Status       string // RASCUNHO, CONFIRMADO, CANCELADO
	PartnerID    string
	Document     string          // nota fiscal / número externo
	FreightTotal decimal.Decimal // frete do pedido, rateado entre os itens na confirmação
	OtherCosts   decimal.Decimal
	ItemsTotal   decimal.Decimal // soma das bases dos itens
	Total        decimal.Decimal // ItemsTotal + FreightTotal + OtherCosts
	Notes        string
	Items        []OrderItem
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// OrderItem é uma linha do pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal
	Total     decimal.Decimal // Quantity * UnitPrice
}

// IsCompra indica pedido de compra (entradas de estoque).
func (o *Order) IsCompra() bool { return o.Kind == OrderKindCompra }
