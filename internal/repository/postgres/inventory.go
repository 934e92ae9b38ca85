package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shopleaf/storefront/pkg/database"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

// InventoryRepository implements repository.InventoryRepository using
// PostgreSQL. Stock lives on the products table; all mutations are single
// conditional statements so concurrent reservations serialize on row locks.
type InventoryRepository struct {
	pool database.DBTX
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory repository.
func NewInventoryRepository(pool database.DBTX) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// GetStock returns the current stock quantity for a product.
func (r *InventoryRepository) GetStock(ctx context.Context, productID string) (int, error) {
	query := `SELECT stock_quantity FROM products WHERE id = $1`

	var quantity int
	err := r.pool.QueryRow(ctx, query, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NotFound("product", productID)
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}

	return quantity, nil
}

// Reserve atomically decrements stock by quantity. The conditional UPDATE
// only matches when enough stock remains, so two concurrent reservations can
// never drive the quantity negative. On a failed match the current
// availability is fetched and returned in a StockConflictError.
func (r *InventoryRepository) Reserve(ctx context.Context, productID string, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2`

	ct, err := r.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		available, err := r.GetStock(ctx, productID)
		if err != nil {
			return err
		}
		return apperrors.InsufficientStock(productID, "", available)
	}

	return nil
}

// Release returns previously reserved quantity to stock.
func (r *InventoryRepository) Release(ctx context.Context, productID string, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}

	return nil
}
