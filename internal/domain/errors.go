package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")

	// Erros do motor de estoque (custeio FIFO por lotes).
	ErrQuantidadeInvalida    = errors.New("quantidade inválida")
	ErrCustoInvalido         = errors.New("custo unitário inválido")
	ErrEstoqueInsuficiente   = errors.New("estoque insuficiente para atender a saída")
	ErrInconsistenciaInterna = errors.New("inconsistência interna de saldo de lote")
)
