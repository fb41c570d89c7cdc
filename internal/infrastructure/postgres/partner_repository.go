package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementação de PartnerRepository sobre PostgreSQL.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = `
	id, name, trade_name, document, kind, email, phone, address, city, state,
	notes, active, created_at, updated_at`

// Create insere o parceiro. Documento repetido vira ErrDuplicate.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	query := `
		INSERT INTO partners (id, name, trade_name, document, kind, email, phone,
			address, city, state, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.TradeName, p.Document, p.Kind, p.Email, p.Phone,
		p.Address, p.City, p.State, p.Notes, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

// GetByID busca um parceiro pelo id. Devolve nil sem erro se não existe.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	query := `SELECT` + partnerColumns + ` FROM partners WHERE id = $1`
	p, err := scanPartner(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

// GetByDocument busca um parceiro pelo documento normalizado (só dígitos).
func (r *PartnerRepo) GetByDocument(ctx context.Context, document string) (*entity.Partner, error) {
	query := `SELECT` + partnerColumns + ` FROM partners WHERE document = $1`
	p, err := scanPartner(r.q.QueryRow(ctx, query, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner by document: %w", err)
	}
	return p, nil
}

// Update atualiza o parceiro.
func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	query := `
		UPDATE partners
		SET name = $2, trade_name = $3, kind = $4, email = $5, phone = $6,
			address = $7, city = $8, state = $9, notes = $10, active = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.TradeName, p.Kind, p.Email, p.Phone,
		p.Address, p.City, p.State, p.Notes, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista parceiros, com filtro opcional por tipo (AMBOS casa com os dois).
func (r *PartnerRepo) List(ctx context.Context, kind string, limit, offset int) ([]*entity.Partner, error) {
	query := `
		SELECT` + partnerColumns + `
		FROM partners
		WHERE ($1 = '' OR kind = $1 OR kind = 'AMBOS')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var out []*entity.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPartner(row pgx.Row) (*entity.Partner, error) {
	var p entity.Partner
	err := row.Scan(
		&p.ID, &p.Name, &p.TradeName, &p.Document, &p.Kind, &p.Email, &p.Phone,
		&p.Address, &p.City, &p.State, &p.Notes, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
