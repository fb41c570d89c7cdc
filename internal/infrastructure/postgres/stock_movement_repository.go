package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do razão de movimentações sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, product_id, type, quantity, unit_value, freight_cost, other_costs,
	total_value, recognized_unit_cost, recognized_total_cost, document,
	origin_kind, order_id, related_movement_id, reason, date, created_at, created_by`

// Create insere o lançamento no razão.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, unit_value,
			freight_cost, other_costs, total_value, recognized_unit_cost,
			recognized_total_cost, document, origin_kind, order_id,
			related_movement_id, reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.UnitValue,
		m.FreightCost, m.OtherCosts, m.TotalValue, m.RecognizedUnitCost,
		m.RecognizedTotalCost, m.Document, m.OriginKind, m.OrderID,
		m.RelatedMovementID, m.Reason, m.Date, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID busca um lançamento. Devolve nil sem erro se não existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista as movimentações do produto, as mais recentes primeiro,
// com filtro opcional de período.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	return r.queryMovements(ctx, query, productID, from, to, limit, offset)
}

// ListEntradasByProduct devolve as ENTRADAs do produto na ordem cronológica,
// base do custo médio legado.
func (r *StockMovementRepo) ListEntradasByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1 AND type = $2
		ORDER BY date ASC, created_at ASC`
	return r.queryMovements(ctx, query, productID, entity.MovementTypeEntrada)
}

// ListByOrder devolve as movimentações geradas por um pedido.
func (r *StockMovementRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM stock_movements
		WHERE order_id = $1
		ORDER BY created_at ASC`
	return r.queryMovements(ctx, query, orderID)
}

// UpdateRecognizedCost preenche retroativamente o custo reconhecido de uma
// movimentação legada. Única mutação permitida no razão.
func (r *StockMovementRepo) UpdateRecognizedCost(ctx context.Context, movementID string, unitCost, totalCost decimal.Decimal) error {
	query := `
		UPDATE stock_movements
		SET recognized_unit_cost = $2, recognized_total_cost = $3
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, movementID, unitCost, totalCost)
	if err != nil {
		return fmt.Errorf("update recognized cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update recognized cost: movimentação %s não encontrada", movementID)
	}
	return nil
}

// NetQuantityByProduct soma as quantidades com sinal do produto.
func (r *StockMovementRepo) NetQuantityByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`
	var net decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID).Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("net quantity by product: %w", err)
	}
	return net, nil
}

func (r *StockMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitValue,
		&m.FreightCost, &m.OtherCosts, &m.TotalValue, &m.RecognizedUnitCost,
		&m.RecognizedTotalCost, &m.Document, &m.OriginKind, &m.OrderID,
		&m.RelatedMovementID, &m.Reason, &m.Date, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
