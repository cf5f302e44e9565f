package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycshare/internal/ledger/models"
	"kycshare/internal/sentinel"
)

func TestInMemory_BankUniqueness(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.CreateBank(ctx, models.NewBank("bank-a", "addr-a")))

	err := s.CreateBank(ctx, models.NewBank("bank-a", "addr-other"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrAlreadyUsed))
}

func TestInMemory_AccountIDNeverReused(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	require.NoError(t, s.ReserveAccountID(ctx, "acct-1"))

	used, err := s.AccountIDUsed(ctx, "acct-1")
	require.NoError(t, err)
	assert.True(t, used)

	err = s.ReserveAccountID(ctx, "acct-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrAlreadyUsed))
}

func TestInMemory_CustomerRoundTripIsIsolated(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	c, err := models.NewCustomer("cust-1", 100, 0, "H1")
	require.NoError(t, err)
	c.Append(models.NewAccount("acct-a", "bank-a", "addr-a"))
	require.NoError(t, s.CreateCustomer(ctx, c))

	// Mutating the caller's copy must not leak into the store
	c.Onboarded[0].AddDebt("acct-b", 99)

	got, err := s.FindCustomer(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Onboarded[0].DebtTo("acct-b"))

	// Save persists a new aggregate state
	got.Balance = 50
	require.NoError(t, s.SaveCustomer(ctx, got))
	again, err := s.FindCustomer(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), again.Balance)
}

func TestInMemory_NotFound(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	_, err := s.FindBank(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.FindCustomer(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = s.UpdateBank(ctx, "missing", func(*models.Bank) error { return nil })
	assert.True(t, errors.Is(err, ErrNotFound))

	c, _ := models.NewCustomer("ghost", 1, 0, "H")
	assert.True(t, errors.Is(s.SaveCustomer(ctx, c), ErrNotFound))
}

func TestInMemory_CustomerCount(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	n, err := s.CustomerCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	c, _ := models.NewCustomer("cust-1", 100, 0, "H1")
	require.NoError(t, s.CreateCustomer(ctx, c))

	n, err = s.CustomerCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
