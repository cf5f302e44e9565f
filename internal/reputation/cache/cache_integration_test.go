//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycshare/internal/ledger/models"
	"kycshare/internal/reputation/cache"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
	"kycshare/pkg/testutil/containers"
)

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	c := cache.NewRedisCache(rc.Client, time.Minute)

	t.Run("customer aggregate round trip", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		_, err := c.GetCustomerRating(ctx, id.CustomerID("cust-1"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		agg := models.RatingAggregate{Cumulative: 15, Count: 2, Average: 7}
		require.NoError(t, c.SetCustomerRating(ctx, id.CustomerID("cust-1"), agg))

		got, err := c.GetCustomerRating(ctx, id.CustomerID("cust-1"))
		require.NoError(t, err)
		assert.Equal(t, agg, *got)
	})

	t.Run("invalidation drops the entry", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		agg := models.RatingAggregate{Cumulative: 8, Count: 1, Average: 8}
		require.NoError(t, c.SetCustomerRating(ctx, id.CustomerID("cust-1"), agg))
		require.NoError(t, c.InvalidateCustomer(ctx, id.CustomerID("cust-1")))

		_, err := c.GetCustomerRating(ctx, id.CustomerID("cust-1"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("bank aggregate round trip", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		agg := models.RatingAggregate{Cumulative: 9, Count: 2, Average: 4}
		require.NoError(t, c.SetBankRating(ctx, id.BankID("bank-a"), agg))

		got, err := c.GetBankRating(ctx, id.BankID("bank-a"))
		require.NoError(t, err)
		assert.Equal(t, agg, *got)

		require.NoError(t, c.InvalidateBank(ctx, id.BankID("bank-a")))
		_, err = c.GetBankRating(ctx, id.BankID("bank-a"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("entries expire with the ttl", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		short := cache.NewRedisCache(rc.Client, 100*time.Millisecond)
		agg := models.RatingAggregate{Cumulative: 5, Count: 1, Average: 5}
		require.NoError(t, short.SetCustomerRating(ctx, id.CustomerID("cust-1"), agg))

		time.Sleep(200 * time.Millisecond)
		_, err := short.GetCustomerRating(ctx, id.CustomerID("cust-1"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
