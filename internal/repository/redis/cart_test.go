package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopleaf/storefront/internal/domain"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

func newTestRepo(t *testing.T) *CartRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartRepository(client)
}

func TestCartRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "cust-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cart := domain.NewCart("cust-1")
	cart.AddProduct("prod-1", 2)

	require.NoError(t, repo.SaveIfVersion(ctx, cart, 0))
	assert.Equal(t, int64(1), cart.Version)

	got, err := repo.Get(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", got.CustomerID)
	assert.Equal(t, int64(1), got.Version)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "prod-1", got.Lines[0].ProductID)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}

func TestCartRepository_SaveIfVersion_StaleVersion(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cart := domain.NewCart("cust-1")
	cart.AddProduct("prod-1", 1)
	require.NoError(t, repo.SaveIfVersion(ctx, cart, 0))

	// A second writer with the same base version must fail.
	stale := domain.NewCart("cust-1")
	stale.AddProduct("prod-2", 1)
	err := repo.SaveIfVersion(ctx, stale, 0)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The stored cart is unchanged.
	got, err := repo.Get(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", got.Lines[0].ProductID)
}

func TestCartRepository_SaveIfVersion_NewCartMustNotExist(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cart := domain.NewCart("cust-1")
	require.NoError(t, repo.SaveIfVersion(ctx, cart, 0))

	// Version 0 against an existing cart is a conflict.
	again := domain.NewCart("cust-1")
	assert.ErrorIs(t, repo.SaveIfVersion(ctx, again, 0), apperrors.ErrConflict)
}

func TestCartRepository_SaveIfVersion_Increments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cart := domain.NewCart("cust-1")
	require.NoError(t, repo.SaveIfVersion(ctx, cart, 0))

	cart.AddProduct("prod-1", 1)
	require.NoError(t, repo.SaveIfVersion(ctx, cart, 1))
	assert.Equal(t, int64(2), cart.Version)
}

func TestCartRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cart := domain.NewCart("cust-1")
	require.NoError(t, repo.SaveIfVersion(ctx, cart, 0))

	require.NoError(t, repo.Delete(ctx, "cust-1"))
	_, err := repo.Get(ctx, "cust-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, repo.Delete(ctx, "cust-1"))
}
