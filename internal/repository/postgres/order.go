package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/shopleaf/storefront/internal/domain"
	"github.com/shopleaf/storefront/internal/repository"
	"github.com/shopleaf/storefront/pkg/database"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order and its lines atomically within a transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, customer_id, status, total_cents, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.CustomerID,
		o.Status,
		o.TotalCents,
		o.ShippingAddress,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	// line_no preserves the cart's line order; created_at is identical for
	// every row of the transaction and cannot be used to sort.
	lineQuery := `
		INSERT INTO order_items (id, order_id, line_no, product_id, name, image_url, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, line := range o.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			line.ID,
			o.ID,
			i,
			line.ProductID,
			line.Name,
			line.ImageURL,
			line.Quantity,
			line.UnitPriceCents,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID, eagerly loading its lines. Order and
// lines come back in a single query via LEFT JOIN + JSONB_AGG to avoid a
// second round trip.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT
			o.id, o.customer_id, o.status, o.total_cents, o.shipping_address, o.created_at, o.updated_at,
			COALESCE(
				JSONB_AGG(
					JSONB_BUILD_OBJECT(
						'id', oi.id,
						'product_id', oi.product_id,
						'name', oi.name,
						'image_url', oi.image_url,
						'quantity', oi.quantity,
						'unit_price_cents', oi.unit_price_cents
					) ORDER BY oi.line_no
				) FILTER (WHERE oi.id IS NOT NULL),
				'[]'::jsonb
			) AS lines
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.id = $1
		GROUP BY o.id, o.customer_id, o.status, o.total_cents, o.shipping_address, o.created_at, o.updated_at`

	var (
		o         domain.Order
		linesJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.CustomerID,
		&o.Status,
		&o.TotalCents,
		&o.ShippingAddress,
		&o.CreatedAt,
		&o.UpdatedAt,
		&linesJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if len(linesJSON) > 0 && string(linesJSON) != "null" && string(linesJSON) != "[]" {
		if err := json.Unmarshal(linesJSON, &o.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal order lines: %w", err)
		}
	} else {
		o.Lines = []domain.OrderLine{}
	}

	return &o, nil
}

// List returns orders matching the given filter with the total count, newest
// first. Lines are not loaded for listings.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argIndex))
		args = append(args, *filter.CustomerID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, customer_id, status, total_cents, shipping_address, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     []domain.Order
		totalCount int
	)

	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.Status,
			&o.TotalCents,
			&o.ShippingAddress,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, totalCount, nil
}

// UpdateStatus changes the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}
