package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para lançar uma despesa.
type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest entrada para atualizar uma despesa (campos opcionais).
type UpdateExpenseRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"due_date"`
	Notes       *string          `json:"notes"`
}

// ExpenseResponse saída de uma despesa.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	Paid        bool            `json:"paid"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListResponse lista paginada de despesas.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
