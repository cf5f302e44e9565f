// Package onboarding implements the customer onboarding state machine:
// genesis creation of a customer record and subsequent fee-paying entry of
// institutions into the customer's onboarded list, including fee
// distribution and the re-verification trigger.
package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kycshare/internal/debt"
	"kycshare/internal/events"
	"kycshare/internal/feedist"
	"kycshare/internal/ledger"
	"kycshare/internal/ledger/models"
	"kycshare/internal/onboarding/tracer"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/reverify"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
	dErrors "kycshare/pkg/domain-errors"
)

// Service runs the onboarding protocol. Every operation executes inside the
// customer's exclusive transaction scope: all preconditions pass or nothing
// happens.
type Service struct {
	tx        ledger.Tx
	trigger   *reverify.Trigger
	publisher *events.Publisher
	tracer    tracer.Tracer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithTracer sets the tracer for operation spans.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(tx ledger.Tx, trigger *reverify.Trigger, publisher *events.Publisher, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		tx:        tx,
		trigger:   trigger,
		publisher: publisher,
		tracer:    tracer.NewNoop(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateCustomerParams carries the arguments of a genesis onboarding.
type CreateCustomerParams struct {
	BankID            id.BankID
	AccountID         id.AccountID
	CustomerID        id.CustomerID
	KYCPrice          int64
	RepeatProbability int
	DocHash           string
	Payment           int64
}

// CreateCustomer performs the genesis onboarding: the first institution
// creates the customer record and its own account in one operation. Genesis
// never takes a fee and always requires a non-empty document hash.
func (s *Service) CreateCustomer(ctx context.Context, caller id.Address, p CreateCustomerParams) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCreateCustomer,
		tracer.String(tracer.AttrCustomerID, p.CustomerID.String()),
		tracer.String(tracer.AttrBankID, p.BankID.String()),
	)
	var err error
	defer func() { span.End(err) }()

	if p.Payment != 0 {
		err = dErrors.New(dErrors.CodeNonZeroFee, "genesis onboarding must not attach a fee")
		return err
	}

	err = s.tx.RunInTx(ctx, p.CustomerID.String(), func(store ledger.Store) error {
		bank, err := store.FindBank(ctx, p.BankID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeBankNotRegistered, "bank not registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		if bank.Owner != caller {
			return dErrors.New(dErrors.CodeCallerMismatch, "caller does not own the bank")
		}
		if _, err := store.FindCustomer(ctx, p.CustomerID); err == nil {
			return dErrors.New(dErrors.CodeDuplicateCustomer, "customer id already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		used, err := store.AccountIDUsed(ctx, p.AccountID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check account id")
		}
		if used {
			return dErrors.New(dErrors.CodeDuplicateAccountID, "account id already used")
		}

		customer, err := models.NewCustomer(p.CustomerID, p.KYCPrice, p.RepeatProbability, p.DocHash)
		if err != nil {
			return err
		}
		customer.Append(models.NewAccount(p.AccountID, p.BankID, caller))

		if err := store.ReserveAccountID(ctx, p.AccountID); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicateAccountID, "account id already used")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reserve account id")
		}
		if err := store.CreateCustomer(ctx, customer); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicateCustomer, "customer id already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
		}
		return store.UpdateBank(ctx, p.BankID, func(b *models.Bank) error {
			b.MarkOnboarded(p.CustomerID)
			b.MarkKYCExecuted(p.CustomerID)
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "customer created",
		"customer_id", p.CustomerID,
		"bank_id", p.BankID,
		"kyc_price", p.KYCPrice,
		"repeat_probability", p.RepeatProbability,
	)
	if s.metrics != nil {
		s.metrics.IncrementCustomersCreated()
		s.metrics.IncrementOnboardings()
	}
	return nil
}

// EnterParams carries the arguments of a non-genesis onboarding.
type EnterParams struct {
	CustomerID id.CustomerID
	AccountID  id.AccountID
	BankID     id.BankID
	Payment    int64
}

// EnterOnboardedList adds a new institution account to an active customer.
// The attached payment must cover the pro-rated fee
// floor(cumulative_kyc_cost / (n+1)). On success the payment is pooled and
// distributed to earlier joiners, the account is appended, and the
// re-verification trigger is evaluated for the new list.
func (s *Service) EnterOnboardedList(ctx context.Context, caller id.Address, p EnterParams) error {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEnterList,
		tracer.String(tracer.AttrCustomerID, p.CustomerID.String()),
		tracer.String(tracer.AttrBankID, p.BankID.String()),
		tracer.String(tracer.AttrAccountID, p.AccountID.String()),
		tracer.Int64(tracer.AttrPayment, p.Payment),
	)
	var err error
	defer func() { span.End(err) }()

	if p.Payment < 0 {
		err = dErrors.New(dErrors.CodeInvalidInput, "payment must be non-negative")
		return err
	}

	var emitted []events.Event
	err = s.tx.RunInTx(ctx, p.CustomerID.String(), func(store ledger.Store) error {
		customer, err := store.FindCustomer(ctx, p.CustomerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "customer not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read customer")
		}
		if customer.OnboardedCount() == 0 {
			return dErrors.New(dErrors.CodeNoPriorOnboarding, "customer has no genesis onboarding")
		}
		bank, err := store.FindBank(ctx, p.BankID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeBankNotRegistered, "bank not registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read bank")
		}
		if bank.Owner != caller {
			return dErrors.New(dErrors.CodeCallerMismatch, "caller does not own the bank")
		}
		if _, _, ok := customer.AccountByOwner(caller); ok {
			return dErrors.New(dErrors.CodeAlreadyOnboarded, "caller already holds an account on this customer")
		}
		if _, _, ok := customer.AccountByBank(p.BankID); ok {
			return dErrors.New(dErrors.CodeAlreadyOnboarded, "bank already holds an account on this customer")
		}
		used, err := store.AccountIDUsed(ctx, p.AccountID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check account id")
		}
		if used {
			return dErrors.New(dErrors.CodeDuplicateAccountID, "account id already used")
		}
		if fee := customer.NextFee(); p.Payment < fee {
			return dErrors.New(dErrors.CodeInsufficientFee, "payment below the pro-rated onboarding fee")
		}

		// All preconditions hold; the operation now commits as a whole.
		if err := store.ReserveAccountID(ctx, p.AccountID); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeDuplicateAccountID, "account id already used")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reserve account id")
		}

		customer.Balance += p.Payment
		payouts := feedist.Distribute(customer)
		span.AddEvent(tracer.EventFeesDistributed, tracer.Int64("payouts", int64(len(payouts))))

		account := models.NewAccount(p.AccountID, p.BankID, caller)
		customer.Append(account)

		draw, fired := s.trigger.Evaluate(customer, p.AccountID)
		span.SetAttributes(
			tracer.Int64(tracer.AttrDraw, int64(draw)),
			tracer.Bool(tracer.AttrFired, fired),
		)
		if fired {
			customer.CumulativeKYCCost += customer.KYCPrice
			customer.KYCCount++
			now := s.now()
			emitted = append(emitted, events.NewRepeatKYCRequired(customer.ID, account.ID, customer.DocumentHash, now))
			emitted = append(emitted, debt.Accrue(customer, account.ID, customer.KYCPrice, now)...)
			span.AddEvent(tracer.EventReverifyFired)
		}

		if err := store.SaveCustomer(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save customer")
		}
		return store.UpdateBank(ctx, p.BankID, func(b *models.Bank) error {
			b.MarkOnboarded(p.CustomerID)
			if fired {
				b.MarkKYCExecuted(p.CustomerID)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	for _, event := range emitted {
		s.publisher.Emit(ctx, event)
	}
	s.logger.InfoContext(ctx, "account onboarded",
		"customer_id", p.CustomerID,
		"bank_id", p.BankID,
		"account_id", p.AccountID,
		"payment", p.Payment,
	)
	if s.metrics != nil {
		s.metrics.IncrementOnboardings()
		s.metrics.AddOnboardingFee(p.Payment)
		for _, event := range emitted {
			switch event.Type {
			case events.TypeRepeatKYCRequired:
				s.metrics.IncrementRepeatDrawsFired()
			case events.TypeDebtAlert:
				s.metrics.AddDebtAlerts(1)
			}
		}
	}
	return nil
}
