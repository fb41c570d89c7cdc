package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin      = "admin"
	RoleEstoquista = "estoquista"
	RoleVendedor   = "vendedor"
)

// User representa um usuário do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	Role         string // admin, estoquista, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
