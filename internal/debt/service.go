package debt

import (
	"context"
	"errors"
	"log/slog"

	"kycshare/internal/ledger"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
	dErrors "kycshare/pkg/domain-errors"
)

// Service handles settlement and queries against the debt ledger.
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

// Settle forwards amount to the creditor identity and reduces the debtor's
// recorded debt, clamped at zero. An overpayment clears the debt and the
// excess still goes to the creditor; it is not refunded. The transfer also
// happens when no matching debtor account exists on the customer - the
// payment then has no effect beyond the transfer itself.
func (s *Service) Settle(ctx context.Context, customerID id.CustomerID, debtorAccountID, creditorAccountID id.AccountID, amount int64) error {
	if amount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "settlement amount must be non-negative")
	}

	return s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}

		// Reject-before-transfer ordering ends here: from this point the
		// operation commits as a whole.
		if creditor, _, ok := customer.AccountByID(creditorAccountID); ok {
			creditor.Balance += amount
		}

		debtor, _, found := customer.AccountByID(debtorAccountID)
		if found {
			debtor.ReduceDebt(creditorAccountID, amount)
		} else {
			s.logger.WarnContext(ctx, "settlement without matching debtor account",
				"customer_id", customerID,
				"debtor_account_id", debtorAccountID,
				"creditor_account_id", creditorAccountID,
				"amount", amount,
			)
		}

		if err := store.SaveCustomer(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
		}
		if s.metrics != nil {
			s.metrics.IncrementDebtSettlements()
		}
		return nil
	})
}

// Query returns the recorded debt from debtor toward creditor for the given
// customer. Read-only.
func (s *Service) Query(ctx context.Context, customerID id.CustomerID, debtorAccountID, creditorAccountID id.AccountID) (int64, error) {
	var value int64
	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		debtor, _, found := customer.AccountByID(debtorAccountID)
		if !found {
			return dErrors.New(dErrors.CodeUnknownAccount, "debtor account not onboarded on customer")
		}
		value = debtor.DebtTo(creditorAccountID)
		return nil
	})
	return value, err
}
