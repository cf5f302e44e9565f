// Package registry enforces consortium-wide identity uniqueness: bank ids,
// customer ids, and the global account-id set. It also resolves caller
// identities to onboarded accounts.
package registry

import (
	"context"
	"errors"
	"log/slog"

	"kycshare/internal/ledger"
	"kycshare/internal/ledger/models"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
	dErrors "kycshare/pkg/domain-errors"
)

// Service gates every mutating call through identity checks. Registry
// mutations serialize on the empty shard key because bank and account-id
// uniqueness span all customers.
type Service struct {
	tx      ledger.Tx
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(tx ledger.Tx, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{tx: tx, logger: logger}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RegisterBank creates a bank with a zeroed rating aggregate, owned by the
// caller identity. Bank ids are unique across the consortium.
func (s *Service) RegisterBank(ctx context.Context, caller id.Address, bankID id.BankID) error {
	if _, err := id.ParseBankID(bankID.String()); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, "", func(store ledger.Store) error {
		if err := store.CreateBank(ctx, models.NewBank(bankID, caller)); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicateBank, "bank id already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create bank")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "bank registered", "bank_id", bankID)
	if s.metrics != nil {
		s.metrics.IncrementBanksRegistered()
	}
	return nil
}

// Resolution is an account located for a caller identity: the account id
// and its position in the customer's onboarding order.
type Resolution struct {
	AccountID id.AccountID
	Position  int
}

// ResolveAccount maps a caller identity to its account on the given
// customer. Fails with UnknownAccount when the caller holds none.
func (s *Service) ResolveAccount(ctx context.Context, caller id.Address, customerID id.CustomerID) (Resolution, error) {
	var res Resolution
	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		account, position, ok := customer.AccountByOwner(caller)
		if !ok {
			return dErrors.New(dErrors.CodeUnknownAccount, "caller has no account on this customer")
		}
		res = Resolution{AccountID: account.ID, Position: position}
		return nil
	})
	return res, err
}

// GetBank returns a snapshot of a bank record.
func (s *Service) GetBank(ctx context.Context, bankID id.BankID) (*models.Bank, error) {
	var bank *models.Bank
	err := s.tx.RunInTx(ctx, "", func(store ledger.Store) error {
		found, err := store.FindBank(ctx, bankID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "bank not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		bank = found
		return nil
	})
	return bank, err
}

// GetCustomer returns a snapshot of a customer aggregate.
func (s *Service) GetCustomer(ctx context.Context, customerID id.CustomerID) (*models.Customer, error) {
	var customer *models.Customer
	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		found, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		customer = found
		return nil
	})
	return customer, err
}
