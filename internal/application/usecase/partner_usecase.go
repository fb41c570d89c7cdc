package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorlite/erp-api/internal/application/dto"
	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
	"github.com/gestorlite/erp-api/pkg/documento"
)

// PartnerUseCase casos de uso do cadastro de parceiros (clientes/fornecedores).
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase constrói o caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create cria um parceiro. O documento (CPF/CNPJ) é validado pelos dígitos
// verificadores e guardado normalizado (só dígitos); documento repetido
// devolve ErrDuplicate.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if in.Name == "" || in.Document == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.PartnerKindCliente && in.Kind != entity.PartnerKindFornecedor && in.Kind != entity.PartnerKindAmbos {
		return nil, domain.ErrInvalidInput
	}
	if err := documento.Validate(in.Document); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	doc := documento.Normalize(in.Document)
	existing, _ := uc.repo.GetByDocument(ctx, doc)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	partner := &entity.Partner{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TradeName: in.TradeName,
		Document:  doc,
		Kind:      in.Kind,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Notes:     in.Notes,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// GetByID busca um parceiro pelo id.
func (uc *PartnerUseCase) GetByID(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	partner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	return toPartnerResponse(partner), nil
}

// Update atualiza os campos informados. O documento não muda após o cadastro.
func (uc *PartnerUseCase) Update(ctx context.Context, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	partner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		partner.Name = *in.Name
	}
	if in.TradeName != nil {
		partner.TradeName = *in.TradeName
	}
	if in.Kind != nil {
		if *in.Kind != entity.PartnerKindCliente && *in.Kind != entity.PartnerKindFornecedor && *in.Kind != entity.PartnerKindAmbos {
			return nil, domain.ErrInvalidInput
		}
		partner.Kind = *in.Kind
	}
	if in.Email != nil {
		partner.Email = *in.Email
	}
	if in.Phone != nil {
		partner.Phone = *in.Phone
	}
	if in.Address != nil {
		partner.Address = *in.Address
	}
	if in.City != nil {
		partner.City = *in.City
	}
	if in.State != nil {
		partner.State = *in.State
	}
	if in.Notes != nil {
		partner.Notes = *in.Notes
	}
	if in.Active != nil {
		partner.Active = *in.Active
	}
	partner.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// List lista parceiros, com filtro opcional por tipo.
func (uc *PartnerUseCase) List(ctx context.Context, kind string, page dto.PageRequest) (*dto.PartnerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PartnerListResponse{
		Items: make([]dto.PartnerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, *toPartnerResponse(p))
	}
	return out, nil
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        p.ID,
		Name:      p.Name,
		TradeName: p.TradeName,
		Document:  p.Document,
		Kind:      p.Kind,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		Notes:     p.Notes,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
