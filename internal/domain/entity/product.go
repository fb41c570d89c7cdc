package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto ou SKU do estoque.
// O custo reconhecido de cada saída vem do motor FIFO (lotes) ou do custo
// médio legado; o produto em si não carrega custo corrente.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	Price        decimal.Decimal // preço de venda
	UnitMeasure  string          // un, kg, cx, ...
	MinimumStock decimal.Decimal // abaixo disso o produto entra no relatório de reposição
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
