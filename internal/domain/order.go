package domain

import "time"

// Order status values. Transitions are unrestricted: operations staff move
// orders between any pair of states, including reopening a cancelled order.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidStatuses lists every accepted order status.
var ValidStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidStatus reports whether s is a recognized order status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// OrderLine is a snapshot of a product at the moment of checkout. Later
// catalog edits never alter it.
type OrderLine struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// LineTotal returns quantity times the captured unit price.
func (l OrderLine) LineTotal() int64 {
	return int64(l.Quantity) * l.UnitPriceCents
}

// Order is an immutable record of a completed checkout. Only Status changes
// after creation.
type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	Lines           []OrderLine `json:"lines"`
	TotalCents      int64       `json:"total_cents"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ComputeTotal sums the line totals.
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.LineTotal()
	}
	return total
}
