// Package httptransport is the thin HTTP layer over the ledger services. It
// decodes requests, resolves the caller identity, delegates to domain
// services, and translates domain errors into the JSON error envelope.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycshare/internal/events"
	"kycshare/internal/ledger/models"
	"kycshare/internal/onboarding"
	"kycshare/internal/platform/health"
	"kycshare/internal/platform/metrics"
	"kycshare/internal/platform/middleware"
	"kycshare/internal/registry"
	id "kycshare/pkg/domain"
)

// RegistryService gates identity operations.
type RegistryService interface {
	RegisterBank(ctx context.Context, caller id.Address, bankID id.BankID) error
	ResolveAccount(ctx context.Context, caller id.Address, customerID id.CustomerID) (registry.Resolution, error)
	GetBank(ctx context.Context, bankID id.BankID) (*models.Bank, error)
	GetCustomer(ctx context.Context, customerID id.CustomerID) (*models.Customer, error)
}

// OnboardingService runs the onboarding state machine.
type OnboardingService interface {
	CreateCustomer(ctx context.Context, caller id.Address, p onboarding.CreateCustomerParams) error
	EnterOnboardedList(ctx context.Context, caller id.Address, p onboarding.EnterParams) error
}

// DebtService settles and queries pairwise debts.
type DebtService interface {
	Settle(ctx context.Context, customerID id.CustomerID, debtorAccountID, creditorAccountID id.AccountID, amount int64) error
	Query(ctx context.Context, customerID id.CustomerID, debtorAccountID, creditorAccountID id.AccountID) (int64, error)
}

// UpdateService runs the mandatory document update workflow.
type UpdateService interface {
	RequireCustomerUpdate(ctx context.Context, caller id.Address, customerID id.CustomerID, flag bool) error
	SetCustomerUpdateFlag(ctx context.Context, caller id.Address, bankID id.BankID, customerID id.CustomerID) error
	UpdateDocPackage(ctx context.Context, caller id.Address, bankID id.BankID, customerID id.CustomerID, newHash string, updateCost int64) error
}

// ReputationService records and serves ratings.
type ReputationService interface {
	RateCustomer(ctx context.Context, caller id.Address, accountID id.AccountID, customerID id.CustomerID, value int64) error
	RateBank(ctx context.Context, caller id.Address, to, from id.BankID, customerID id.CustomerID, value int64) error
	CustomerRating(ctx context.Context, customerID id.CustomerID) (models.RatingAggregate, error)
	BankRating(ctx context.Context, bankID id.BankID) (models.RatingAggregate, error)
}

// EventJournal serves the per-customer observation journal.
type EventJournal interface {
	List(ctx context.Context, customerID id.CustomerID) ([]events.Event, error)
}

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	registry   RegistryService
	onboarding OnboardingService
	debt       DebtService
	update     UpdateService
	reputation ReputationService
	journal    EventJournal
	logger     *slog.Logger
}

func NewHandler(
	registrySvc RegistryService,
	onboardingSvc OnboardingService,
	debtSvc DebtService,
	updateSvc UpdateService,
	reputationSvc ReputationService,
	journal EventJournal,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		registry:   registrySvc,
		onboarding: onboardingSvc,
		debt:       debtSvc,
		update:     updateSvc,
		reputation: reputationSvc,
		journal:    journal,
		logger:     logger,
	}
}

// RouterConfig carries the transport-level collaborators.
type RouterConfig struct {
	Validator middleware.TokenValidator
	Metrics   *metrics.Metrics
	Health    *health.Handler
}

// NewRouter wires all endpoints with the middleware stack. Ledger operations
// sit behind the caller identity middleware; health and metrics do not.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(cfg.Metrics))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(cfg.Validator, logger))

		r.Post("/banks", h.handleRegisterBank)
		r.Get("/banks/{bankID}", h.handleGetBank)
		r.Get("/banks/{bankID}/rating", h.handleBankRating)
		r.Post("/banks/{bankID}/ratings", h.handleRateBank)

		r.Post("/customers", h.handleCreateCustomer)
		r.Get("/customers/{customerID}", h.handleGetCustomer)
		r.Post("/customers/{customerID}/onboard", h.handleEnterOnboardedList)
		r.Get("/customers/{customerID}/resolve-account", h.handleResolveAccount)
		r.Get("/customers/{customerID}/events", h.handleListEvents)

		r.Post("/customers/{customerID}/require-update", h.handleRequireUpdate)
		r.Post("/customers/{customerID}/update-flag", h.handleSetUpdateFlag)
		r.Post("/customers/{customerID}/doc-package", h.handleUpdateDocPackage)

		r.Post("/customers/{customerID}/debts/settle", h.handleSettleDebt)
		r.Get("/customers/{customerID}/debts", h.handleQueryDebt)

		r.Post("/customers/{customerID}/ratings", h.handleRateCustomer)
		r.Get("/customers/{customerID}/rating", h.handleCustomerRating)
	})

	return r
}
