package domain

import "time"

// Product is a catalog item. Price is stored in cents to avoid floating
// point rounding in totals.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"price_cents"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InStock reports whether the product can cover the requested quantity.
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
