package repository

import (
	"context"
	"time"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// OrderRepository define o porto de persistência de pedidos e seus itens.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error) // carrega os itens
	UpdateStatus(ctx context.Context, orderID, status string, confirmedAt *time.Time) error
	List(ctx context.Context, kind, status string, limit, offset int) ([]*entity.Order, error)

	// ListReconciliationCandidates devolve pedidos de venda confirmados com ao
	// menos uma SAIDA sem linhas de consumo de lote (candidatos brutos; a
	// elegibilidade completa é reavaliada pelo job, por pedido e em transação).
	ListReconciliationCandidates(ctx context.Context, limit int) ([]*entity.Order, error)
}
