package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopleaf/storefront/internal/repository"
	"github.com/shopleaf/storefront/pkg/database"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

func newProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := database.NewMockPool(t)
	return NewProductRepository(mock), mock
}

var productColumns = []string{
	"id", "name", "description", "price_cents", "image_url", "category", "stock_quantity", "active", "created_at", "updated_at",
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow("prod-1", "Widget", "A widget", int64(1000), "http://img/1", "tools", 5, true, now, now))

	p, err := repo.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, int64(1000), p.PriceCents)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectQuery("SELECT").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(productColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductRepository_List(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	now := time.Now().UTC()
	cols := append(append([]string{}, productColumns...), "total_count")
	mock.ExpectQuery("SELECT").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("prod-1", "Widget", "A widget", int64(1000), "http://img/1", "tools", 5, true, now, now, 2).
			AddRow("prod-2", "Gadget", "A gadget", int64(550), "http://img/2", "tools", 3, true, now, now, 2))

	products, total, err := repo.List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name)
}

func TestProductRepository_List_CategoryFilter(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	category := "tools"
	now := time.Now().UTC()
	cols := append(append([]string{}, productColumns...), "total_count")
	mock.ExpectQuery("SELECT").
		WithArgs(category, 10, 10).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("prod-3", "Sprocket", "", int64(250), "", "tools", 1, true, now, now, 11))

	products, total, err := repo.List(context.Background(), repository.ProductFilter{
		Category: &category,
		Page:     2,
		PerPage:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, products, 1)
}
