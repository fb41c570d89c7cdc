package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// StockMovementRepository define o porto do razão de movimentações (append-only).
// A única atualização permitida é o preenchimento retroativo dos campos de
// custo reconhecido pela reconciliação.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)

	// ListEntradasByProduct devolve as ENTRADAs do produto, base do custo
	// médio legado.
	ListEntradasByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)

	// ListByOrder devolve as movimentações geradas por um pedido.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error)

	// UpdateRecognizedCost preenche o custo reconhecido de uma movimentação
	// legada durante a reconciliação.
	UpdateRecognizedCost(ctx context.Context, movementID string, unitCost, totalCost decimal.Decimal) error

	// NetQuantityByProduct soma as quantidades com sinal do produto, a via do
	// razão para o saldo de estoque.
	NetQuantityByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
}
