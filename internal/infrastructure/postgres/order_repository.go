package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestorlite/erp-api/internal/domain"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementação de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	id, kind, status, partner_id, document, freight_total, other_costs,
	items_total, total, notes, confirmed_at, created_at, updated_at, created_by`

// Create insere o pedido e seus itens.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, kind, status, partner_id, document, freight_total,
			other_costs, items_total, total, notes, confirmed_at, created_at,
			updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Kind, o.Status, o.PartnerID, o.Document, o.FreightTotal,
		o.OtherCosts, o.ItemsTotal, o.Total, o.Notes, o.ConfirmedAt,
		o.CreatedAt, o.UpdatedAt, o.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range o.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Total,
		); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByID busca o pedido com itens. Devolve nil sem erro se não existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// UpdateStatus muda a situação do pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string, confirmedAt *time.Time) error {
	query := `
		UPDATE orders
		SET status = $2, confirmed_at = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, orderID, status, confirmedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos, filtro opcional por tipo e situação, os mais recentes
// primeiro. Os itens não são carregados na listagem.
func (r *OrderRepo) List(ctx context.Context, kind, status string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR kind = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	return r.queryOrders(ctx, query, kind, status, limit, offset)
}

// ListReconciliationCandidates devolve vendas confirmadas com ao menos uma
// SAIDA sem linha de consumo de lote — os pedidos ainda custeados pelo médio
// legado. A elegibilidade completa é reavaliada pelo job em transação.
func (r *OrderRepo) ListReconciliationCandidates(ctx context.Context, limit int) ([]*entity.Order, error) {
	query := `
		SELECT` + orderColumns + `
		FROM orders o
		WHERE o.kind = 'VENDA'
		  AND o.status = 'CONFIRMADO'
		  AND EXISTS (
			SELECT 1
			FROM stock_movements m
			WHERE m.order_id = o.id
			  AND m.type = 'SAIDA'
			  AND NOT EXISTS (
				SELECT 1 FROM lot_consumptions c WHERE c.movement_id = m.id
			  )
		  )
		ORDER BY o.confirmed_at ASC
		LIMIT $1`
	orders, err := r.queryOrders(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var out []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.Kind, &o.Status, &o.PartnerID, &o.Document, &o.FreightTotal,
		&o.OtherCosts, &o.ItemsTotal, &o.Total, &o.Notes, &o.ConfirmedAt,
		&o.CreatedAt, &o.UpdatedAt, &o.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
