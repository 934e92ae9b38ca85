package repository

import (
	"context"

	"github.com/shopleaf/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by customer ID.
	Get(ctx context.Context, customerID string) (*domain.Cart, error)

	// SaveIfVersion persists the cart only if the stored version still equals
	// expectedVersion (0 means the cart must not exist yet). On success the
	// cart's Version is bumped. A stale version returns apperrors.ErrConflict.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int64) error

	// Delete removes a cart from the store. Deleting an absent cart is not an
	// error.
	Delete(ctx context.Context, customerID string) error
}

// ProductFilter defines filter criteria for listing catalog products.
type ProductFilter struct {
	Category *string
	Page     int
	PerPage  int
}

// ProductRepository defines the interface for catalog reads.
type ProductRepository interface {
	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
}

// InventoryRepository defines atomic stock operations.
type InventoryRepository interface {
	// GetStock returns the current stock quantity for a product.
	GetStock(ctx context.Context, productID string) (int, error)

	// Reserve atomically decrements stock by quantity. If stock is
	// insufficient it returns *apperrors.StockConflictError carrying the
	// quantity still available, and the row is left untouched.
	Reserve(ctx context.Context, productID string, quantity int) error

	// Release returns previously reserved quantity to stock. Used to unwind
	// partial reservations when a later checkout step fails.
	Release(ctx context.Context, productID string, quantity int) error
}

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	CustomerID *string
	Status     *string
	Page       int
	PerPage    int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order and its lines into the store atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier, including lines.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the given filter along with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id, status string) error
}
