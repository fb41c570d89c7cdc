package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa uma despesa do negócio (aluguel, energia, serviços...).
type Expense struct {
	ID          string
	Description string
	Category    string
	Amount      decimal.Decimal
	DueDate     time.Time
	PaidAt      *time.Time // nulo enquanto em aberto
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
}

// Paid indica se a despesa já foi quitada.
func (e *Expense) Paid() bool { return e.PaidAt != nil }
