// Package cache provides the Redis-backed read cache for rating snapshots.
// The ledger store stays authoritative; entries are invalidated on every
// rating mutation and repopulated on the next read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kycshare/internal/ledger/models"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
)

const (
	customerKeyPrefix = "reputation:customer:"
	bankKeyPrefix     = "reputation:bank:"
)

// DefaultTTL bounds staleness when an invalidation is lost.
const DefaultTTL = 5 * time.Minute

// RedisCache persists rating aggregates in Redis with TTL-based eviction.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed rating cache. A non-positive ttl
// falls back to DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// GetCustomerRating loads a cached customer rating aggregate. Returns
// sentinel.ErrNotFound on a miss.
func (c *RedisCache) GetCustomerRating(ctx context.Context, customerID id.CustomerID) (*models.RatingAggregate, error) {
	return c.get(ctx, customerKeyPrefix+customerID.String())
}

// SetCustomerRating caches a customer rating aggregate.
func (c *RedisCache) SetCustomerRating(ctx context.Context, customerID id.CustomerID, agg models.RatingAggregate) error {
	return c.set(ctx, customerKeyPrefix+customerID.String(), agg)
}

// InvalidateCustomer drops the cached aggregate after a rating mutation.
func (c *RedisCache) InvalidateCustomer(ctx context.Context, customerID id.CustomerID) error {
	if err := c.client.Del(ctx, customerKeyPrefix+customerID.String()).Err(); err != nil {
		return fmt.Errorf("invalidate customer rating cache: %w", err)
	}
	return nil
}

// GetBankRating loads a cached bank rating aggregate. Returns
// sentinel.ErrNotFound on a miss.
func (c *RedisCache) GetBankRating(ctx context.Context, bankID id.BankID) (*models.RatingAggregate, error) {
	return c.get(ctx, bankKeyPrefix+bankID.String())
}

// SetBankRating caches a bank rating aggregate.
func (c *RedisCache) SetBankRating(ctx context.Context, bankID id.BankID, agg models.RatingAggregate) error {
	return c.set(ctx, bankKeyPrefix+bankID.String(), agg)
}

// InvalidateBank drops the cached aggregate after a rating mutation.
func (c *RedisCache) InvalidateBank(ctx context.Context, bankID id.BankID) error {
	if err := c.client.Del(ctx, bankKeyPrefix+bankID.String()).Err(); err != nil {
		return fmt.Errorf("invalidate bank rating cache: %w", err)
	}
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string) (*models.RatingAggregate, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("read rating cache: %w", err)
	}
	var agg models.RatingAggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("decode rating cache: %w", err)
	}
	return &agg, nil
}

func (c *RedisCache) set(ctx context.Context, key string, agg models.RatingAggregate) error {
	payload, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("encode rating cache: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("write rating cache: %w", err)
	}
	return nil
}
