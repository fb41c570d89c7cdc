package postgres

import (
	"context"
	"fmt"

	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

var _ repository.LotConsumptionRepository = (*LotConsumptionRepo)(nil)

// LotConsumptionRepo implementação da tabela pivô movimentação x lote.
type LotConsumptionRepo struct {
	q Querier
}

// NewLotConsumptionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLotConsumptionRepository(q Querier) *LotConsumptionRepo {
	return &LotConsumptionRepo{q: q}
}

// Create insere a linha de consumo.
func (r *LotConsumptionRepo) Create(ctx context.Context, c *entity.LotConsumption) error {
	query := `
		INSERT INTO lot_consumptions (id, movement_id, lot_id, quantity_consumed,
			unit_cost_applied, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.MovementID, c.LotID, c.QuantityConsumed,
		c.UnitCostApplied, c.TotalCost, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lot consumption: %w", err)
	}
	return nil
}

// ListByMovement devolve as linhas de consumo de uma movimentação.
func (r *LotConsumptionRepo) ListByMovement(ctx context.Context, movementID string) ([]*entity.LotConsumption, error) {
	query := `
		SELECT id, movement_id, lot_id, quantity_consumed, unit_cost_applied, total_cost, created_at
		FROM lot_consumptions
		WHERE movement_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list lot consumptions: %w", err)
	}
	defer rows.Close()

	var out []*entity.LotConsumption
	for rows.Next() {
		var c entity.LotConsumption
		if err := rows.Scan(&c.ID, &c.MovementID, &c.LotID, &c.QuantityConsumed,
			&c.UnitCostApplied, &c.TotalCost, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot consumption: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CountByMovements conta as linhas de consumo por movimentação, insumo dos
// predicados de elegibilidade da reconciliação.
func (r *LotConsumptionRepo) CountByMovements(ctx context.Context, movementIDs []string) (map[string]int, error) {
	out := map[string]int{}
	if len(movementIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT movement_id, COUNT(*)
		FROM lot_consumptions
		WHERE movement_id = ANY($1)
		GROUP BY movement_id`
	rows, err := r.q.Query(ctx, query, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("count lot consumptions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movementID string
		var count int
		if err := rows.Scan(&movementID, &count); err != nil {
			return nil, fmt.Errorf("scan consumption count: %w", err)
		}
		out[movementID] = count
	}
	return out, rows.Err()
}
