package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopleaf/storefront/internal/domain"
	"github.com/shopleaf/storefront/internal/event"
	"github.com/shopleaf/storefront/internal/repository"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerLine is the maximum quantity allowed for a single cart line.
	MaxQuantityPerLine = 100
	// MaxLinesPerCart is the maximum number of distinct lines allowed in a cart.
	MaxLinesPerCart = 50
)

// AddItemInput holds the parameters for adding a product to the cart.
// Quantity defaults to 1 when omitted.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityInput holds the parameters for updating a line quantity.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartLineView is a cart line joined with current catalog detail. Prices are
// the catalog's current prices; the cart never snapshots them.
type CartLineView struct {
	LineID         string `json:"line_id"`
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// CartView is the customer-facing cart representation with product detail
// resolved per line and a running total.
type CartView struct {
	CustomerID string         `json:"customer_id"`
	Lines      []CartLineView `json:"lines"`
	TotalCents int64          `json:"total_cents"`
	Version    int64          `json:"version"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a customer. If no cart exists, an empty cart
// is returned; a customer always has a conceptual cart.
func (s *CartService) GetCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer id is required")
	}

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(customerID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// GetCartView returns the cart with product detail resolved per line. A line
// whose product has since left the catalog is kept with empty detail so the
// customer can still see and remove it.
func (s *CartService) GetCartView(ctx context.Context, customerID string) (*CartView, error) {
	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		CustomerID: cart.CustomerID,
		Lines:      make([]CartLineView, 0, len(cart.Lines)),
		Version:    cart.Version,
		UpdatedAt:  cart.UpdatedAt,
	}

	for _, line := range cart.Lines {
		lv := CartLineView{
			LineID:    line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}

		product, err := s.products.GetByID(ctx, line.ProductID)
		switch {
		case err == nil:
			lv.Name = product.Name
			lv.ImageURL = product.ImageURL
			lv.UnitPriceCents = product.PriceCents
			lv.LineTotalCents = product.PriceCents * int64(line.Quantity)
		case errors.Is(err, apperrors.ErrNotFound):
			s.logger.WarnContext(ctx, "cart line references missing product",
				slog.String("customer_id", customerID),
				slog.String("product_id", line.ProductID),
			)
		default:
			return nil, fmt.Errorf("resolve cart line product: %w", err)
		}

		view.TotalCents += lv.LineTotalCents
		view.Lines = append(view.Lines, lv)
	}

	return view, nil
}

// AddItem adds a product to the customer's cart. If a line for the product
// already exists, the quantities are merged. The product must exist in the
// catalog; availability is not checked here, only at checkout.
func (s *CartService) AddItem(ctx context.Context, customerID string, input AddItemInput) (*domain.Cart, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", input.ProductID)
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version

	if i := cart.FindLineByProduct(input.ProductID); i >= 0 {
		if cart.Lines[i].Quantity+input.Quantity > MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerLine))
		}
	} else if len(cart.Lines) >= MaxLinesPerCart {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d lines", MaxLinesPerCart))
	}

	cart.AddProduct(input.ProductID, input.Quantity)

	if err := s.carts.SaveIfVersion(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("customer_id", customerID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line. Quantity 0 removes the
// line. An unknown line ID is an error.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID, lineID string, quantity int) (*domain.Cart, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer id is required")
	}
	if lineID == "" {
		return nil, apperrors.InvalidInput("line id is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("cart line", lineID)
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}

	expectedVersion := cart.Version

	i := cart.FindLine(lineID)
	if i < 0 {
		return nil, apperrors.NotFound("cart line", lineID)
	}

	if quantity == 0 {
		cart.RemoveLine(i)
	} else {
		cart.Lines[i].Quantity = quantity
	}

	if err := s.carts.SaveIfVersion(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("customer_id", customerID),
		slog.String("line_id", lineID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a line from the cart. Removing a line that does not
// exist is a no-op; the operation is idempotent.
func (s *CartService) RemoveItem(ctx context.Context, customerID, lineID string) (*domain.Cart, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("customer id is required")
	}
	if lineID == "" {
		return nil, apperrors.InvalidInput("line id is required")
	}

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(customerID), nil
		}
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	i := cart.FindLine(lineID)
	if i < 0 {
		return cart, nil
	}

	expectedVersion := cart.Version
	cart.RemoveLine(i)

	if err := s.carts.SaveIfVersion(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart line removed",
		slog.String("customer_id", customerID),
		slog.String("line_id", lineID),
	)

	return cart, nil
}

// ClearCart removes the customer's cart entirely.
func (s *CartService) ClearCart(ctx context.Context, customerID string) error {
	if customerID == "" {
		return apperrors.InvalidInput("customer id is required")
	}

	if err := s.carts.Delete(ctx, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, customerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// publishCartUpdated publishes the cart.updated event best-effort. Event
// delivery never fails the cart operation.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("customer_id", cart.CustomerID),
			slog.String("error", err.Error()),
		)
	}
}
