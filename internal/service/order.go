package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopleaf/storefront/internal/domain"
	"github.com/shopleaf/storefront/internal/event"
	"github.com/shopleaf/storefront/internal/repository"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
	"github.com/shopleaf/storefront/pkg/pagination"
)

// UpdateStatusInput holds the parameters for an order status change.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderService implements the business logic for order queries and status
// management.
type OrderService struct {
	orders   repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		producer: producer,
		logger:   logger,
	}
}

// GetOrder retrieves an order by ID. Customers may only read their own
// orders; admins may read any.
func (s *OrderService) GetOrder(ctx context.Context, id, customerID string, isAdmin bool) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.CustomerID != customerID {
		return nil, apperrors.Forbidden("you do not have access to this order")
	}

	return order, nil
}

// ListOrders returns the order history, newest first. Admins see every
// order; customers see only their own. Status filtering is optional.
func (s *OrderService) ListOrders(ctx context.Context, customerID string, isAdmin bool, status string, params pagination.Params) ([]domain.Order, int, error) {
	filter := repository.OrderFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}

	if !isAdmin {
		filter.CustomerID = &customerID
	}

	if status != "" {
		status = strings.ToLower(status)
		if !domain.IsValidStatus(status) {
			return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid status filter: %s", status))
		}
		filter.Status = &status
	}

	return s.orders.List(ctx, filter)
}

// UpdateStatus changes an order's status. Any recognized status can be set
// from any current status; the value itself is the only thing validated.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	status := strings.ToLower(input.Status)
	if !domain.IsValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status: %s, must be one of %s", input.Status, strings.Join(domain.ValidStatuses, ", ")))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status

	if err := s.producer.PublishOrderStatusChanged(ctx, id, oldStatus, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("old_status", oldStatus),
		slog.String("new_status", status),
	)

	return order, nil
}
