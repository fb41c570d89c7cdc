package repository

import (
	"context"
	"time"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// ExpenseRepository define o porto de persistência de despesas.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, from, to *time.Time, onlyUnpaid bool, limit, offset int) ([]*entity.Expense, error)
}
