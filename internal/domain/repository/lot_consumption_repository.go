package repository

import (
	"context"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// LotConsumptionRepository define o porto da tabela pivô movimentação x lote.
// Linhas são imutáveis; só a reconciliação as cria retroativamente.
type LotConsumptionRepository interface {
	Create(ctx context.Context, consumption *entity.LotConsumption) error
	ListByMovement(ctx context.Context, movementID string) ([]*entity.LotConsumption, error)

	// CountByMovements conta as linhas de consumo por movimentação, insumo dos
	// predicados de elegibilidade.
	CountByMovements(ctx context.Context, movementIDs []string) (map[string]int, error)
}
