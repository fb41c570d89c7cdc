package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar uma movimentação de estoque
// pela tela (origem MANUAL). Quantity é magnitude em ENTRADA/SAIDA e carrega o
// sinal em AJUSTE. FIFOEnabled nulo usa o padrão do ambiente.
type RegisterMovementRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	Type        string           `json:"type" validate:"required,oneof=ENTRADA SAIDA AJUSTE"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitValue   *decimal.Decimal `json:"unit_value"`
	FreightCost decimal.Decimal  `json:"freight_cost"`
	OtherCosts  decimal.Decimal  `json:"other_costs"`
	Document    string           `json:"document"`
	Reason      string           `json:"reason"`
	FIFOEnabled *bool            `json:"fifo_enabled"`
	Date        *time.Time       `json:"date"`
}

// MovementResponse saída de uma movimentação.
type MovementResponse struct {
	ID                  string           `json:"id"`
	ProductID           string           `json:"product_id"`
	Type                string           `json:"type"`
	Quantity            decimal.Decimal  `json:"quantity"`
	UnitValue           *decimal.Decimal `json:"unit_value,omitempty"`
	FreightCost         decimal.Decimal  `json:"freight_cost"`
	OtherCosts          decimal.Decimal  `json:"other_costs"`
	TotalValue          decimal.Decimal  `json:"total_value"`
	RecognizedUnitCost  *decimal.Decimal `json:"recognized_unit_cost,omitempty"`
	RecognizedTotalCost *decimal.Decimal `json:"recognized_total_cost,omitempty"`
	Document            string           `json:"document"`
	OriginKind          string           `json:"origin_kind"`
	OrderID             *string          `json:"order_id,omitempty"`
	Reason              string           `json:"reason"`
	Date                time.Time        `json:"date"`
	CreatedAt           time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimentações.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LotResponse saída de um lote de estoque.
type LotResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	QuantityInitial   decimal.Decimal `json:"quantity_initial"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalValue        decimal.Decimal `json:"total_value"`
	OriginKind        string          `json:"origin_kind"`
	EntryDate         time.Time       `json:"entry_date"`
	Document          string          `json:"document"`
}

// LotListResponse lista de lotes de um produto.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ReconcileRequest entrada do disparo do job de reconciliação.
type ReconcileRequest struct {
	Limit int `json:"limit" validate:"min=0,max=500"`
}
