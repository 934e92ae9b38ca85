package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopleaf/storefront/internal/domain"
	"github.com/shopleaf/storefront/internal/event"
	"github.com/shopleaf/storefront/internal/repository"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

// CheckoutInput holds the parameters for converting a cart into an order.
type CheckoutInput struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

// CheckoutService converts a customer's cart into an order. The conversion is
// all-or-nothing: stock is reserved line by line, and any failure unwinds the
// reservations already taken before the error is returned.
type CheckoutService struct {
	carts     repository.CartRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	orders    repository.OrderRepository
	producer  *event.Producer
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	orders repository.OrderRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		products:  products,
		inventory: inventory,
		orders:    orders,
		producer:  producer,
		logger:    logger,
	}
}

// Checkout places an order from the customer's current cart.
//
// The flow: load the cart, resolve every product, reserve stock line by
// line, persist the order with price and name snapshots, then clear the
// cart. Persisting the order is the commit point. Failures before it release
// every reservation taken so far and leave cart, stock, and orders exactly
// as they were. A cart-clear failure after the commit point is logged and
// tolerated; the order stands.
func (s *CheckoutService) Checkout(ctx context.Context, customerID string, input CheckoutInput) (*domain.Order, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer id is required")
	}
	if input.ShippingAddress == "" {
		return nil, apperrors.InvalidInput("shipping address is required")
	}

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.EmptyCart()
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart()
	}

	// Resolve every product up front. A vanished product fails the whole
	// checkout before any stock is touched.
	resolved := make(map[string]*domain.Product, len(cart.Lines))
	for _, line := range cart.Lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("product", line.ProductID)
			}
			return nil, fmt.Errorf("resolve product %s: %w", line.ProductID, err)
		}
		resolved[line.ProductID] = product
	}

	// Reserve stock line by line. On failure, release what was already
	// reserved so a partial checkout leaves no trace.
	reserved := make([]domain.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if err := s.inventory.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			s.releaseReservations(ctx, reserved)

			var conflict *apperrors.StockConflictError
			if errors.As(err, &conflict) && conflict.ProductName == "" {
				conflict.ProductName = resolved[line.ProductID].Name
			}
			return nil, err
		}
		reserved = append(reserved, line)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
		Lines:           make([]domain.OrderLine, len(cart.Lines)),
	}

	for i, line := range cart.Lines {
		product := resolved[line.ProductID]
		order.Lines[i] = domain.OrderLine{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			Name:           product.Name,
			ImageURL:       product.ImageURL,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		}
	}
	order.TotalCents = order.ComputeTotal()

	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseReservations(ctx, reserved)
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Commit point passed: the order exists and stock matches it. Everything
	// from here on is best-effort.
	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.carts.Delete(ctx, customerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("customer_id", customerID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	} else if err := s.producer.PublishCartCleared(ctx, customerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("customer_id", customerID),
		slog.Int64("total_cents", order.TotalCents),
		slog.Int("lines", len(order.Lines)),
	)

	return order, nil
}

// releaseReservations returns reserved stock after a failed checkout step.
// Release failures are logged; the stock discrepancy needs operator
// attention but must not mask the original error.
func (s *CheckoutService) releaseReservations(ctx context.Context, reserved []domain.CartLine) {
	for _, line := range reserved {
		if err := s.inventory.Release(ctx, line.ProductID, line.Quantity); err != nil {
			s.logger.ErrorContext(ctx, "failed to release reserved stock",
				slog.String("product_id", line.ProductID),
				slog.Int("quantity", line.Quantity),
				slog.String("error", err.Error()),
			)
		}
	}
}
