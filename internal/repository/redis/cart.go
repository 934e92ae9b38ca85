package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopleaf/storefront/internal/domain"
	apperrors "github.com/shopleaf/storefront/pkg/errors"
)

const keyPrefix = "cart:"

// saveIfVersionScript implements compare-and-set on the cart's version field.
// KEYS[1] is the cart key, ARGV[1] the expected version (0 = key must not
// exist), ARGV[2] the serialized cart. Returns 1 on success, 0 on version
// mismatch.
var saveIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
local expected = tonumber(ARGV[1])
if current == false then
	if expected == 0 then
		redis.call('SET', KEYS[1], ARGV[2])
		return 1
	end
	return 0
end
local decoded = cjson.decode(current)
if tonumber(decoded['version']) == expected then
	redis.call('SET', KEYS[1], ARGV[2])
	return 1
end
return 0
`)

// CartRepository implements repository.CartRepository using Redis. Carts are
// stored as JSON without TTL; a cart lives until checkout clears it.
type CartRepository struct {
	client *redis.Client
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

// Get retrieves a cart by customer ID from Redis.
func (r *CartRepository) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	key := keyPrefix + customerID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", customerID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// SaveIfVersion persists the cart only if the stored version still equals
// expectedVersion. The cart's version is bumped before the write so
// concurrent writers against the same base version cannot both succeed.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int64) error {
	key := keyPrefix + cart.CustomerID

	cart.Version = expectedVersion + 1
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	ok, err := saveIfVersionScript.Run(ctx, r.client, []string{key}, expectedVersion, data).Int()
	if err != nil {
		return fmt.Errorf("redis save cart: %w", err)
	}
	if ok != 1 {
		cart.Version = expectedVersion
		return apperrors.Conflict("cart was modified concurrently, retry the request")
	}

	return nil
}

// Delete removes a cart from Redis by customer ID. Deleting an absent cart
// succeeds silently.
func (r *CartRepository) Delete(ctx context.Context, customerID string) error {
	key := keyPrefix + customerID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
