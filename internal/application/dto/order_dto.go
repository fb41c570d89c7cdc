package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest linha de pedido na criação.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para criar um pedido em rascunho.
type CreateOrderRequest struct {
	Kind         string             `json:"kind" validate:"required,oneof=COMPRA VENDA"`
	PartnerID    string             `json:"partner_id" validate:"required,uuid"`
	Document     string             `json:"document"`
	FreightTotal decimal.Decimal    `json:"freight_total"`
	OtherCosts   decimal.Decimal    `json:"other_costs"`
	Notes        string             `json:"notes"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1"`
}

// ConfirmOrderRequest entrada da confirmação de pedido. FIFOEnabled nulo usa o
// padrão do ambiente (config).
type ConfirmOrderRequest struct {
	FIFOEnabled *bool `json:"fifo_enabled"`
}

// OrderItemResponse linha de pedido na saída.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// OrderResponse saída de um pedido.
type OrderResponse struct {
	ID           string              `json:"id"`
	Kind         string              `json:"kind"`
	Status       string              `json:"status"`
	PartnerID    string              `json:"partner_id"`
	Document     string              `json:"document"`
	FreightTotal decimal.Decimal     `json:"freight_total"`
	OtherCosts   decimal.Decimal     `json:"other_costs"`
	ItemsTotal   decimal.Decimal     `json:"items_total"`
	Total        decimal.Decimal     `json:"total"`
	Notes        string              `json:"notes"`
	FIFOState    string              `json:"fifo_state,omitempty"` // fifo, eligible, legacy
	Items        []OrderItemResponse `json:"items"`
	ConfirmedAt  *time.Time          `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
