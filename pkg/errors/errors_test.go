package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("order", "ord-1")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "order with id ord-1 not found")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, NotFound("product", "p1"), ErrNotFound)
	assert.ErrorIs(t, InvalidInput("bad"), ErrInvalidInput)
	assert.ErrorIs(t, Unauthorized("no token"), ErrUnauthorized)
	assert.ErrorIs(t, Forbidden("not yours"), ErrForbidden)
	assert.ErrorIs(t, Conflict("version mismatch"), ErrConflict)
	assert.ErrorIs(t, EmptyCart(), ErrEmptyCart)
}

func TestStockConflictError(t *testing.T) {
	err := InsufficientStock("prod-1", "Blue Mug", 3)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, err.Available)
	assert.Contains(t, err.Error(), "Blue Mug")
	assert.Contains(t, err.Error(), "available: 3")
}

func TestStockConflictError_FallsBackToID(t *testing.T) {
	err := InsufficientStock("prod-9", "", 0)
	assert.Contains(t, err.Error(), "prod-9")
}

func TestStockConflictError_AsTarget(t *testing.T) {
	wrapped := fmt.Errorf("reserve stock: %w", InsufficientStock("prod-1", "Mug", 1))

	var stockErr *StockConflictError
	assert.True(t, errors.As(wrapped, &stockErr))
	assert.Equal(t, 1, stockErr.Available)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"empty cart", EmptyCart(), http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"conflict", ErrConflict, http.StatusConflict},
		{"insufficient stock", InsufficientStock("p", "n", 2), http.StatusConflict},
		{"wrapped insufficient stock", fmt.Errorf("checkout: %w", InsufficientStock("p", "n", 2)), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("base")
	wrapped := Wrap(base, "context")
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "context")
}
