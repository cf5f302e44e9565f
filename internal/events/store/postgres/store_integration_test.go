//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycshare/internal/events"
	"kycshare/internal/events/store/postgres"
	id "kycshare/pkg/domain"
	"kycshare/pkg/testutil/containers"
)

func TestPostgresJournal(t *testing.T) {
	ctx := context.Background()
	pg := containers.GetManager().GetPostgres(t)
	store := postgres.New(pg.DB)

	t.Run("append and list in order", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		base := time.Now().UTC().Truncate(time.Microsecond)
		first := events.NewKYCUpdateRequired("cust-1", base)
		second := events.NewDebtAlert("cust-1", "acct-a", "addr-a", "acct-b", 50, base.Add(time.Second))
		other := events.NewRepeatKYCRequired("cust-2", "acct-c", "hash-9", base)

		require.NoError(t, store.Append(ctx, first))
		require.NoError(t, store.Append(ctx, second))
		require.NoError(t, store.Append(ctx, other))

		list, err := store.ListByCustomer(ctx, id.CustomerID("cust-1"))
		require.NoError(t, err)
		require.Len(t, list, 2)

		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, events.TypeKYCUpdateRequired, list[0].Type)
		assert.Equal(t, second.ID, list[1].ID)
		assert.Equal(t, events.TypeDebtAlert, list[1].Type)
		assert.Equal(t, id.AccountID("acct-a"), list[1].DebtorAccountID)
		assert.Equal(t, id.Address("addr-a"), list[1].DebtorAddress)
		assert.Equal(t, id.AccountID("acct-b"), list[1].CreditorAccountID)
		assert.Equal(t, int64(50), list[1].Value)
	})

	t.Run("redelivery deduplicates on event id", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		event := events.NewKYCUpdateRequired("cust-1", time.Now().UTC())
		require.NoError(t, store.Append(ctx, event))
		require.NoError(t, store.Append(ctx, event))

		list, err := store.ListByCustomer(ctx, id.CustomerID("cust-1"))
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unknown customer returns empty", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		list, err := store.ListByCustomer(ctx, id.CustomerID("cust-404"))
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
