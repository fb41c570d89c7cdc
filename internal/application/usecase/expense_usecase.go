package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorlite/erp-api/internal/application/dto"
	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// ExpenseUseCase casos de uso de despesas do negócio.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase constrói o caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create lança uma despesa.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetByID busca uma despesa.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(expense), nil
}

// Update atualiza os campos informados de uma despesa ainda em aberto.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if expense.Paid() {
		return nil, domain.ErrConflict
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		expense.Description = *in.Description
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.Amount != nil {
		if !in.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = *in.Amount
	}
	if in.DueDate != nil {
		expense.DueDate = *in.DueDate
	}
	if in.Notes != nil {
		expense.Notes = *in.Notes
	}
	expense.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// MarkPaid quita a despesa. Quitar de novo devolve ErrConflict.
func (uc *ExpenseUseCase) MarkPaid(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if expense.Paid() {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	expense.PaidAt = &now
	expense.UpdatedAt = now
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// Delete remove uma despesa em aberto. Despesa quitada não é removida.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	if expense.Paid() {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// List lista despesas por período, com filtro opcional de só as em aberto.
func (uc *ExpenseUseCase) List(ctx context.Context, from, to *time.Time, onlyUnpaid bool, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, from, to, onlyUnpaid, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseListResponse{
		Items: make([]dto.ExpenseResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range list {
		out.Items = append(out.Items, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		DueDate:     e.DueDate,
		PaidAt:      e.PaidAt,
		Paid:        e.Paid(),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
