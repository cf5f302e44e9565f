package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycshare/internal/ledger"
	"kycshare/internal/ledger/models"
	ledgerstore "kycshare/internal/ledger/store"
	dErrors "kycshare/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *ledgerstore.InMemory) {
	t.Helper()
	store := ledgerstore.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(ledger.NewShardedTx(store), logger), store
}

func TestRegisterBank(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterBank(ctx, "addr-a", "bank-a"))

	bank, err := store.FindBank(ctx, "bank-a")
	require.NoError(t, err)
	assert.True(t, bank.Registered)
	assert.Equal(t, int64(0), bank.Rating.Count)
	assert.Equal(t, int64(0), bank.Rating.Average)
}

func TestRegisterBank_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterBank(ctx, "addr-a", "bank-a"))

	// a second registration fails even from a different caller
	err := svc.RegisterBank(ctx, "addr-b", "bank-a")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicateBank))
}

func TestRegisterBank_EmptyID(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.RegisterBank(context.Background(), "addr-a", "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestResolveAccount(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	c, err := models.NewCustomer("cust-1", 100, 0, "H1")
	require.NoError(t, err)
	c.Append(models.NewAccount("acct-a", "bank-a", "addr-a"))
	c.Append(models.NewAccount("acct-b", "bank-b", "addr-b"))
	require.NoError(t, store.CreateCustomer(ctx, c))

	res, err := svc.ResolveAccount(ctx, "addr-b", "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "acct-b", res.AccountID.String())
	assert.Equal(t, 1, res.Position)
}

func TestResolveAccount_Unknown(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	c, err := models.NewCustomer("cust-1", 100, 0, "H1")
	require.NoError(t, err)
	require.NoError(t, store.CreateCustomer(ctx, c))

	_, err = svc.ResolveAccount(ctx, "addr-x", "cust-1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnknownAccount))

	_, err = svc.ResolveAccount(ctx, "addr-x", "cust-missing")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestGetBankAndCustomerSnapshots(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RegisterBank(ctx, "addr-a", "bank-a"))
	c, err := models.NewCustomer("cust-1", 100, 0, "H1")
	require.NoError(t, err)
	require.NoError(t, store.CreateCustomer(ctx, c))

	bank, err := svc.GetBank(ctx, "bank-a")
	require.NoError(t, err)
	assert.Equal(t, "bank-a", bank.ID.String())

	customer, err := svc.GetCustomer(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "H1", customer.DocumentHash)

	_, err = svc.GetBank(ctx, "bank-x")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
