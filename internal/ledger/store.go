// Package ledger defines the shared persistence and transaction contracts for
// the consortium state: banks, customer aggregates, and the global account-id
// uniqueness set. Services mutate state only through a Tx so every operation
// commits atomically or not at all.
package ledger

import (
	"context"

	"kycshare/internal/ledger/models"
	id "kycshare/pkg/domain"
)

// Store is the persistence boundary for consortium state.
//
// Error Contract:
//   - Find methods return sentinel.ErrNotFound when the entity does not exist
//   - Create/Reserve methods return sentinel.ErrAlreadyUsed on uniqueness
//     violations
//   - Other methods return nil on success or wrapped errors on failure
type Store interface {
	// CreateBank atomically creates the bank if the id is unused.
	CreateBank(ctx context.Context, bank *models.Bank) error
	FindBank(ctx context.Context, bankID id.BankID) (*models.Bank, error)
	// UpdateBank applies fn to the stored bank under the store's write lock,
	// keeping institution bookkeeping atomic across customer transactions.
	UpdateBank(ctx context.Context, bankID id.BankID, fn func(*models.Bank) error) error

	// CreateCustomer atomically creates the aggregate if the id is unused.
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	FindCustomer(ctx context.Context, customerID id.CustomerID) (*models.Customer, error)
	// SaveCustomer overwrites the full aggregate. Callers hold the
	// per-customer transaction scope, so the read-modify-write is safe.
	SaveCustomer(ctx context.Context, customer *models.Customer) error

	// ReserveAccountID marks an account id as used, globally and forever.
	ReserveAccountID(ctx context.Context, accountID id.AccountID) error
	AccountIDUsed(ctx context.Context, accountID id.AccountID) (bool, error)

	CustomerCount(ctx context.Context) (int, error)
}
