package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product entry in a cart. ID identifies the line itself;
// lines are merged by product, so a product appears at most once per cart.
type CartLine struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds a customer's pending selections. Version supports optimistic
// concurrency control in the store: each successful save increments it, and a
// save against a stale version fails.
type Cart struct {
	CustomerID string     `json:"customer_id"`
	Lines      []CartLine `json:"lines"`
	Version    int64      `json:"version"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for the customer.
func NewCart(customerID string) *Cart {
	return &Cart{
		CustomerID: customerID,
		Lines:      []CartLine{},
		UpdatedAt:  time.Now().UTC(),
	}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// FindLineByProduct returns the index of the line holding the given product,
// or -1 if absent.
func (c *Cart) FindLineByProduct(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// FindLine returns the index of the line with the given line ID, or -1.
func (c *Cart) FindLine(lineID string) int {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

// AddProduct merges the quantity into an existing line for the product or
// appends a new line. It returns the affected line.
func (c *Cart) AddProduct(productID string, quantity int) CartLine {
	if i := c.FindLineByProduct(productID); i >= 0 {
		c.Lines[i].Quantity += quantity
		return c.Lines[i]
	}
	line := CartLine{
		ID:        uuid.New().String(),
		ProductID: productID,
		Quantity:  quantity,
	}
	c.Lines = append(c.Lines, line)
	return line
}

// RemoveLine deletes the line at index i.
func (c *Cart) RemoveLine(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}
