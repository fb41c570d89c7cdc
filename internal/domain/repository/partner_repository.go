package repository

import (
	"context"

	"github.com/gestorlite/erp-api/internal/domain/entity"
)

// PartnerRepository define o porto de persistência de parceiros
// (clientes/fornecedores).
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	GetByDocument(ctx context.Context, document string) (*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
	List(ctx context.Context, kind string, limit, offset int) ([]*entity.Partner, error)
}
