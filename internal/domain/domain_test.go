package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddProduct_MergesByProduct(t *testing.T) {
	cart := NewCart("cust-1")

	first := cart.AddProduct("prod-1", 2)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, first.Quantity)

	merged := cart.AddProduct("prod-1", 3)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)

	cart.AddProduct("prod-2", 1)
	assert.Len(t, cart.Lines, 2)
}

func TestCart_FindLine(t *testing.T) {
	cart := NewCart("cust-1")
	line := cart.AddProduct("prod-1", 1)

	assert.Equal(t, 0, cart.FindLine(line.ID))
	assert.Equal(t, -1, cart.FindLine("missing"))
	assert.Equal(t, 0, cart.FindLineByProduct("prod-1"))
	assert.Equal(t, -1, cart.FindLineByProduct("missing"))
}

func TestCart_RemoveLine(t *testing.T) {
	cart := NewCart("cust-1")
	cart.AddProduct("prod-1", 1)
	cart.AddProduct("prod-2", 2)

	cart.RemoveLine(0)
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, "prod-2", cart.Lines[0].ProductID)
}

func TestCart_IsEmpty(t *testing.T) {
	cart := NewCart("cust-1")
	assert.True(t, cart.IsEmpty())
	cart.AddProduct("prod-1", 1)
	assert.False(t, cart.IsEmpty())
}

func TestProduct_InStock(t *testing.T) {
	p := &Product{StockQuantity: 2}
	assert.True(t, p.InStock(2))
	assert.False(t, p.InStock(3))
	assert.True(t, p.InStock(0))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("returned"))
	assert.False(t, IsValidStatus(""))
}

func TestOrder_ComputeTotal(t *testing.T) {
	o := &Order{
		Lines: []OrderLine{
			{Quantity: 2, UnitPriceCents: 1000},
			{Quantity: 1, UnitPriceCents: 550},
		},
	}
	assert.Equal(t, int64(2550), o.ComputeTotal())
}
