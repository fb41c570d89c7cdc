package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementação de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `
	id, description, category, amount, due_date, paid_at, notes, created_at, updated_at, created_by`

// Create insere a despesa.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, description, category, amount, due_date, paid_at,
			notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Description, e.Category, e.Amount, e.DueDate, e.PaidAt,
		e.Notes, e.CreatedAt, e.UpdatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// GetByID busca uma despesa. Devolve nil sem erro se não existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT` + expenseColumns + ` FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Description, &e.Category, &e.Amount, &e.DueDate, &e.PaidAt,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Update atualiza a despesa.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET description = $2, category = $3, amount = $4, due_date = $5,
			paid_at = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Description, e.Category, e.Amount, e.DueDate,
		e.PaidAt, e.Notes, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove a despesa.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista despesas por período de vencimento, opcionalmente só as em
// aberto, as de vencimento mais próximo primeiro.
func (r *ExpenseRepo) List(ctx context.Context, from, to *time.Time, onlyUnpaid bool, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT` + expenseColumns + `
		FROM expenses
		WHERE ($1::timestamptz IS NULL OR due_date >= $1)
		  AND ($2::timestamptz IS NULL OR due_date <= $2)
		  AND (NOT $3 OR paid_at IS NULL)
		ORDER BY due_date ASC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, from, to, onlyUnpaid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount,
			&e.DueDate, &e.PaidAt, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
