package reverify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kycshare/internal/debt"
	"kycshare/internal/events"
	"kycshare/internal/ledger"
	"kycshare/internal/ledger/models"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
	dErrors "kycshare/pkg/domain-errors"
)

// DefaultUpdateCostFactor bounds the accepted cost of a mandatory update at
// kyc_price * factor.
const DefaultUpdateCostFactor = 2

// Service runs the mandatory document update workflow. The probabilistic
// trigger itself is evaluated by the onboarding flow; this service covers
// the regulator path.
type Service struct {
	tx         ledger.Tx
	publisher  *events.Publisher
	regulators map[id.Address]bool
	costFactor int64
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithUpdateCostFactor overrides the update cost ceiling multiplier.
func WithUpdateCostFactor(factor int64) Option {
	return func(s *Service) {
		if factor > 0 {
			s.costFactor = factor
		}
	}
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService builds the workflow service. regulators is the allow-list of
// caller identities permitted to flag customers for mandatory updates.
func NewService(tx ledger.Tx, publisher *events.Publisher, regulators []id.Address, logger *slog.Logger, opts ...Option) *Service {
	allowed := make(map[id.Address]bool, len(regulators))
	for _, r := range regulators {
		allowed[r] = true
	}
	svc := &Service{
		tx:         tx,
		publisher:  publisher,
		regulators: allowed,
		costFactor: DefaultUpdateCostFactor,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// RequireCustomerUpdate sets or clears the regulator's update requirement on
// a customer. Regulator-only. Setting the flag emits a KYCUpdateRequired
// observation so onboarded institutions can pick the update up.
func (s *Service) RequireCustomerUpdate(ctx context.Context, caller id.Address, customerID id.CustomerID, flag bool) error {
	if !s.regulators[caller] {
		return dErrors.New(dErrors.CodeForbidden, "only the regulator may require a customer update")
	}

	var emitted []events.Event
	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}

		customer.RequireUpdate = flag
		if !flag {
			// Withdrawing the requirement also aborts any update in progress.
			customer.UpdateInProgress = false
			customer.UpdateBankID = ""
		}
		if err := store.SaveCustomer(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
		}
		if flag {
			emitted = append(emitted, events.NewKYCUpdateRequired(customerID, s.now()))
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, event := range emitted {
		s.publisher.Emit(ctx, event)
	}
	if flag {
		s.logger.InfoContext(ctx, "mandatory update required", "customer_id", customerID)
		if s.metrics != nil {
			s.metrics.IncrementUpdatesRequired()
		}
	}
	return nil
}

// SetCustomerUpdateFlag claims a pending mandatory update for the caller's
// bank. The bank must hold an account on the customer; once claimed, only
// that bank may execute the update.
func (s *Service) SetCustomerUpdateFlag(ctx context.Context, caller id.Address, bankID id.BankID, customerID id.CustomerID) error {
	return s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		if !customer.RequireUpdate {
			return dErrors.New(dErrors.CodeUpdateNotRequired, "customer has no pending update requirement")
		}
		account, _, ok := customer.AccountByBank(bankID)
		if !ok || account.Owner != caller {
			return dErrors.New(dErrors.CodeAccountMismatch, "caller's bank holds no account on this customer")
		}

		customer.UpdateInProgress = true
		customer.UpdateBankID = bankID
		if err := store.SaveCustomer(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
		}
		return store.UpdateBank(ctx, bankID, func(bank *models.Bank) error {
			bank.UpdateFlags[customerID] = true
			return nil
		})
	})
}

// UpdateDocPackage executes a claimed mandatory update: replaces the
// document hash, accrues the update cost as debt owed to the updater, clears
// the workflow flags, and credits the bank with a performed verification.
// All preconditions are checked before any state moves.
func (s *Service) UpdateDocPackage(ctx context.Context, caller id.Address, bankID id.BankID, customerID id.CustomerID, newHash string, updateCost int64) error {
	if newHash == "" {
		return dErrors.New(dErrors.CodeEmptyDocumentPackage, "document package hash required")
	}
	if updateCost < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "update cost must be non-negative")
	}

	var alerts []events.Event
	err := s.tx.RunInTx(ctx, customerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		if !customer.RequireUpdate {
			return dErrors.New(dErrors.CodeUpdateNotRequired, "customer has no pending update requirement")
		}
		if !customer.UpdateInProgress {
			return dErrors.New(dErrors.CodeUpdateNotInProgress, "no institution has claimed the update")
		}
		if customer.UpdateBankID != bankID {
			return dErrors.New(dErrors.CodeWrongDesignatedBank, "update is claimed by another institution")
		}
		bank, err := store.FindBank(ctx, bankID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeBankNotRegistered, "bank not registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		if !bank.OperatesWith(customerID) {
			return dErrors.New(dErrors.CodeNotOperating, "bank does not operate with this customer")
		}
		account, _, ok := customer.AccountByBank(bankID)
		if !ok || account.Owner != caller {
			return dErrors.New(dErrors.CodeAccountMismatch, "caller's bank holds no account on this customer")
		}
		if newHash == customer.DocumentHash {
			return dErrors.New(dErrors.CodeHashUnchanged, "new document hash equals the current one")
		}
		if updateCost > customer.KYCPrice*s.costFactor {
			return dErrors.New(dErrors.CodeCostExceedsLimit, "update cost exceeds the accepted ceiling")
		}

		customer.DocumentHash = newHash
		alerts = debt.Accrue(customer, account.ID, updateCost, s.now())
		customer.RequireUpdate = false
		customer.UpdateInProgress = false
		customer.UpdateBankID = ""

		if err := store.SaveCustomer(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
		}
		return store.UpdateBank(ctx, bankID, func(b *models.Bank) error {
			delete(b.UpdateFlags, customerID)
			b.MarkKYCExecuted(customerID)
			return nil
		})
	})
	if err != nil {
		return err
	}

	for _, alert := range alerts {
		s.publisher.Emit(ctx, alert)
	}
	s.logger.InfoContext(ctx, "mandatory update completed",
		"customer_id", customerID,
		"bank_id", bankID,
		"update_cost", updateCost,
	)
	if s.metrics != nil {
		s.metrics.IncrementMandatoryUpdates()
		s.metrics.AddDebtAlerts(len(alerts))
	}
	return nil
}
