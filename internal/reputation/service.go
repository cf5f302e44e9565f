// Package reputation maintains the dual trust scores: institution→customer
// ratings and institution→institution ratings, both as running floor
// averages with overwrite semantics.
package reputation

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"kycshare/internal/ledger"
	"kycshare/internal/ledger/models"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
	dErrors "kycshare/pkg/domain-errors"
)

// Cache is the optional rating read cache. A nil Cache disables caching.
type Cache interface {
	GetCustomerRating(ctx context.Context, customerID id.CustomerID) (*models.RatingAggregate, error)
	SetCustomerRating(ctx context.Context, customerID id.CustomerID, agg models.RatingAggregate) error
	InvalidateCustomer(ctx context.Context, customerID id.CustomerID) error
	GetBankRating(ctx context.Context, bankID id.BankID) (*models.RatingAggregate, error)
	SetBankRating(ctx context.Context, bankID id.BankID, agg models.RatingAggregate) error
	InvalidateBank(ctx context.Context, bankID id.BankID) error
}

// Service records ratings and serves rating reads.
type Service struct {
	tx      ledger.Tx
	cache   Cache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithCache attaches a rating read cache.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

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

// RateCustomer records the caller institution's 1-10 score for a customer.
// The caller's account must be bound to the customer. Re-rating overwrites:
// the count grows only on a first-time rating, the cumulative moves by
// new-old, and the average is recomputed as floor(cumulative/count).
func (s *Service) RateCustomer(ctx context.Context, caller id.Address, accountID id.AccountID, customerID id.CustomerID, value int64) error {
	if !models.ValidRating(value) {
		return dErrors.New(dErrors.CodeRatingOutOfRange, "rating must be within [1,10]")
	}

	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		account, _, ok := customer.AccountByID(accountID)
		if !ok || account.Owner != caller {
			return dErrors.New(dErrors.CodeAccountMismatch, "caller's account is not bound to this customer")
		}

		customer.ApplyRating(account.BankID, value)
		if err := store.SaveCustomer(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCustomer(ctx, customerID)
	if s.metrics != nil {
		s.metrics.IncrementCustomerRatings(strconv.FormatInt(value, 10))
	}
	return nil
}

// RateBank records a 1-10 score from one institution to another, scoped to a
// customer both actually worked with: the rated bank must have performed the
// verification and the rating bank must hold an account on the customer.
func (s *Service) RateBank(ctx context.Context, caller id.Address, to, from id.BankID, customerID id.CustomerID, value int64) error {
	if !models.ValidRating(value) {
		return dErrors.New(dErrors.CodeRatingOutOfRange, "rating must be within [1,10]")
	}

	// Bank aggregates live in the registry scope, so serialize there.
	err := s.tx.RunInTx(ctx, "", func(store ledger.Store) error {
		fromBank, err := store.FindBank(ctx, from)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeBankNotRegistered, "rating bank not registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		if fromBank.Owner != caller {
			return dErrors.New(dErrors.CodeCallerMismatch, "caller is not the rating bank's identity")
		}
		toBank, err := store.FindBank(ctx, to)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeBankNotRegistered, "rated bank not registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		if !toBank.ExecutedKYC(customerID) {
			return dErrors.New(dErrors.CodeNotEligibleToRate, "rated bank performed no verification for this customer")
		}
		if !fromBank.OperatesWith(customerID) {
			return dErrors.New(dErrors.CodeNotOperating, "rating bank does not operate with this customer")
		}

		return store.UpdateBank(ctx, to, func(b *models.Bank) error {
			b.ApplyPeerRating(from, value)
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.invalidateBank(ctx, to)
	if s.metrics != nil {
		s.metrics.IncrementBankRatings(strconv.FormatInt(value, 10))
	}
	return nil
}

// CustomerRating returns a customer's rating aggregate, read-through cached.
func (s *Service) CustomerRating(ctx context.Context, customerID id.CustomerID) (models.RatingAggregate, error) {
	if s.cache != nil {
		if agg, err := s.cache.GetCustomerRating(ctx, customerID); err == nil {
			return *agg, nil
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "rating cache read failed", "error", err, "customer_id", customerID)
		}
	}

	var agg models.RatingAggregate
	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		agg = customer.Rating
		return nil
	})
	if err != nil {
		return models.RatingAggregate{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetCustomerRating(ctx, customerID, agg); err != nil {
			s.logger.WarnContext(ctx, "rating cache write failed", "error", err, "customer_id", customerID)
		}
	}
	return agg, nil
}

// BankRating returns a bank's peer rating aggregate, read-through cached.
func (s *Service) BankRating(ctx context.Context, bankID id.BankID) (models.RatingAggregate, error) {
	if s.cache != nil {
		if agg, err := s.cache.GetBankRating(ctx, bankID); err == nil {
			return *agg, nil
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "rating cache read failed", "error", err, "bank_id", bankID)
		}
	}

	var agg models.RatingAggregate
	err := s.tx.RunInTx(ctx, "", func(store ledger.Store) error {
		bank, err := store.FindBank(ctx, bankID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "bank not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		agg = bank.Rating
		return nil
	})
	if err != nil {
		return models.RatingAggregate{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetBankRating(ctx, bankID, agg); err != nil {
			s.logger.WarnContext(ctx, "rating cache write failed", "error", err, "bank_id", bankID)
		}
	}
	return agg, nil
}

func (s *Service) invalidateCustomer(ctx context.Context, customerID id.CustomerID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCustomer(ctx, customerID); err != nil {
		s.logger.WarnContext(ctx, "rating cache invalidation failed", "error", err, "customer_id", customerID)
	}
}

func (s *Service) invalidateBank(ctx context.Context, bankID id.BankID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBank(ctx, bankID); err != nil {
		s.logger.WarnContext(ctx, "rating cache invalidation failed", "error", err, "bank_id", bankID)
	}
}
