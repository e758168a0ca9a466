package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paisasoft/mercado-api/internal/domain"
	"github.com/paisasoft/mercado-api/internal/domain/entity"
	"github.com/paisasoft/mercado-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Los pedidos van en orders + order_items; son append-only, no hay DELETE.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (id, user_id, first_name, last_name, email, document_type, document_number, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		order.ID, nullIfEmpty(order.UserID), order.Customer.FirstName, order.Customer.LastName,
		order.Customer.Email, order.Customer.DocumentType, order.Customer.DocumentNumber,
		order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert order: id duplicado: %w", err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i, it := range order.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (order_id, position, product_id, sku, name, unit_price, quantity, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID, i, it.ProductID, it.SKU, it.Name, it.UnitPrice, it.Quantity, it.Category,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	order, err := r.scanOrder(r.q.QueryRow(ctx, `
		SELECT id, COALESCE(user_id, ''), first_name, last_name, email, document_type, document_number, total, status, created_at
		FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus persiste el nuevo estado.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByOwner(userID string) ([]*entity.Order, error) {
	return r.list(`
		SELECT id, COALESCE(user_id, ''), first_name, last_name, email, document_type, document_number, total, status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAll lista pedidos con paginación, más recientes primero.
func (r *OrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	return r.list(`
		SELECT id, COALESCE(user_id, ''), first_name, last_name, email, document_type, document_number, total, status, created_at
		FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListCreatedToday lista los pedidos creados hoy (zona horaria del servidor de DB).
func (r *OrderRepo) ListCreatedToday() ([]*entity.Order, error) {
	return r.list(`
		SELECT id, COALESCE(user_id, ''), first_name, last_name, email, document_type, document_number, total, status, created_at
		FROM orders WHERE created_at >= date_trunc('day', now()) ORDER BY created_at DESC`)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range out {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepo) scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Customer.FirstName, &o.Customer.LastName, &o.Customer.Email,
		&o.Customer.DocumentType, &o.Customer.DocumentNumber, &o.Total, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, order *entity.Order) error {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, sku, name, unit_price, quantity, category
		FROM order_items WHERE order_id = $1 ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.CartLine
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.Name, &it.UnitPrice, &it.Quantity, &it.Category); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	return rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
