package entity

import "time"

// Tipos de parceiro de negócio.
const (
	PartnerKindCliente    = "CLIENTE"
	PartnerKindFornecedor = "FORNECEDOR"
	PartnerKindAmbos      = "AMBOS"
)

// Partner representa uma entidade do cadastro: cliente, fornecedor ou ambos.
type Partner struct {
	ID        string
	Name      string
	TradeName string // nome fantasia
	Document  string // CPF ou CNPJ, somente dígitos
	Kind      string // CLIENTE, FORNECEDOR, AMBOS
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFornecedor indica se o parceiro pode figurar em pedidos de compra.
func (p *Partner) IsFornecedor() bool {
	return p.Kind == PartnerKindFornecedor || p.Kind == PartnerKindAmbos
}

// IsCliente indica se o parceiro pode figurar em pedidos de venda.
func (p *Partner) IsCliente() bool {
	return p.Kind == PartnerKindCliente || p.Kind == PartnerKindAmbos
}
