package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementação de StockLotRepository sobre PostgreSQL (usável
// com pool ou tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository constrói o adaptador de lotes. Passar pool ou tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const lotColumns = `
	id, product_id, quantity_initial, quantity_available, unit_cost,
	total_value, origin_kind, origin_movement_id, entry_date, document, created_at`

// Create insere o lote.
func (r *StockLotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, product_id, quantity_initial, quantity_available,
			unit_cost, total_value, origin_kind, origin_movement_id, entry_date, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.ProductID, lot.QuantityInitial, lot.QuantityAvailable,
		lot.UnitCost, lot.TotalValue, lot.OriginKind, lot.OriginMovementID,
		lot.EntryDate, lot.Document, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock lot: %w", err)
	}
	return nil
}

// GetByID busca um lote pelo id. Devolve nil sem erro se não existe.
func (r *StockLotRepo) GetByID(ctx context.Context, id string) (*entity.StockLot, error) {
	query := `SELECT` + lotColumns + ` FROM stock_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return lot, nil
}

// ListEligible devolve os lotes com disponível > 0 do produto, na ordem FIFO
// (data de entrada ASC, id ASC como desempate).
func (r *StockLotRepo) ListEligible(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT` + lotColumns + `
		FROM stock_lots
		WHERE product_id = $1 AND quantity_available > 0
		ORDER BY entry_date ASC, id ASC`
	return r.queryLots(ctx, query, productID)
}

// ListEligibleForUpdate é ListEligible com bloqueio exclusivo das linhas.
// Serializa consumidores concorrentes do mesmo produto até o fim da tx.
func (r *StockLotRepo) ListEligibleForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT` + lotColumns + `
		FROM stock_lots
		WHERE product_id = $1 AND quantity_available > 0
		ORDER BY entry_date ASC, id ASC
		FOR UPDATE`
	return r.queryLots(ctx, query, productID)
}

// DecrementAvailable abate amount do disponível, com guarda no próprio UPDATE:
// se o disponível é menor que amount a linha não casa e o plano foi calculado
// fora do bloqueio — a transação aborta com ErrInconsistenciaInterna.
func (r *StockLotRepo) DecrementAvailable(ctx context.Context, lotID string, amount decimal.Decimal) (*entity.StockLot, error) {
	query := `
		UPDATE stock_lots
		SET quantity_available = quantity_available - $2
		WHERE id = $1 AND quantity_available >= $2
		RETURNING` + lotColumns
	lot, err := scanLot(r.q.QueryRow(ctx, query, lotID, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInconsistenciaInterna
		}
		return nil, fmt.Errorf("decrement stock lot: %w", err)
	}
	return lot, nil
}

// ListByProduct lista todos os lotes do produto (inclusive zerados), os mais
// recentes primeiro, para telas de auditoria.
func (r *StockLotRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockLot, error) {
	query := `
		SELECT` + lotColumns + `
		FROM stock_lots
		WHERE product_id = $1
		ORDER BY entry_date DESC, id DESC
		LIMIT $2 OFFSET $3`
	return r.queryLots(ctx, query, productID, limit, offset)
}

// SumAvailableByProduct soma o disponível por produto. Com productIDs vazio,
// considera todos os produtos com lote.
func (r *StockLotRepo) SumAvailableByProduct(ctx context.Context, productIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, COALESCE(SUM(quantity_available), 0)
		FROM stock_lots
		WHERE ($1::text[] IS NULL OR product_id = ANY($1))
		GROUP BY product_id`
	var filter any
	if len(productIDs) > 0 {
		filter = productIDs
	}
	rows, err := r.q.Query(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("sum available by product: %w", err)
	}
	defer rows.Close()

	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var productID string
		var sum decimal.Decimal
		if err := rows.Scan(&productID, &sum); err != nil {
			return nil, fmt.Errorf("scan available sum: %w", err)
		}
		out[productID] = sum
	}
	return out, rows.Err()
}

func (r *StockLotRepo) queryLots(ctx context.Context, query string, args ...any) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stock lots: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		out = append(out, lot)
	}
	return out, rows.Err()
}

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var lot entity.StockLot
	err := row.Scan(
		&lot.ID, &lot.ProductID, &lot.QuantityInitial, &lot.QuantityAvailable,
		&lot.UnitCost, &lot.TotalValue, &lot.OriginKind, &lot.OriginMovementID,
		&lot.EntryDate, &lot.Document, &lot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lot, nil
}
