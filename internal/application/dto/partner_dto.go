package dto

import "time"

// CreatePartnerRequest entrada para criar um parceiro (cliente/fornecedor).
type CreatePartnerRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	TradeName string `json:"trade_name"`
	Document  string `json:"document" validate:"required"` // CPF ou CNPJ
	Kind      string `json:"kind" validate:"required,oneof=CLIENTE FORNECEDOR AMBOS"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Notes     string `json:"notes"`
}

// UpdatePartnerRequest entrada para atualizar um parceiro (campos opcionais).
type UpdatePartnerRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	TradeName *string `json:"trade_name"`
	Kind      *string `json:"kind" validate:"omitempty,oneof=CLIENTE FORNECEDOR AMBOS"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Notes     *string `json:"notes"`
	Active    *bool   `json:"active"`
}

// PartnerResponse saída de um parceiro.
type PartnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TradeName string    `json:"trade_name"`
	Document  string    `json:"document"`
	Kind      string    `json:"kind"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartnerListResponse lista paginada de parceiros.
type PartnerListResponse struct {
	Items []PartnerResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
