package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	BanksRegistered  prometheus.Counter
	CustomersCreated prometheus.Counter
	Onboardings      prometheus.Counter
	OnboardingFees   prometheus.Counter
	EndpointLatency  *prometheus.HistogramVec

	// Distribution and debt metrics
	FeePayouts      prometheus.Counter
	DebtSettlements prometheus.Counter
	DebtAlerts      prometheus.Counter

	// Re-verification metrics
	RepeatDrawsFired prometheus.Counter
	MandatoryUpdates prometheus.Counter
	UpdatesRequired  prometheus.Counter

	// Reputation metrics
	CustomerRatings *prometheus.CounterVec
	BankRatings     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		BanksRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_banks_registered_total",
			Help: "Total number of banks registered",
		}),
		CustomersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_customers_created_total",
			Help: "Total number of customers created",
		}),
		Onboardings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_onboardings_total",
			Help: "Total number of accounts added to onboarded lists",
		}),
		OnboardingFees: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_onboarding_fees_total",
			Help: "Total onboarding fee value collected",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycshare_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		FeePayouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_fee_payouts_total",
			Help: "Total number of fee distribution payouts made",
		}),
		DebtSettlements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_debt_settlements_total",
			Help: "Total number of debt settlements processed",
		}),
		DebtAlerts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_debt_alerts_total",
			Help: "Total number of debt alerts emitted",
		}),
		RepeatDrawsFired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_repeat_draws_fired_total",
			Help: "Total number of probabilistic re-verification draws that fired",
		}),
		MandatoryUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_mandatory_updates_total",
			Help: "Total number of completed mandatory document updates",
		}),
		UpdatesRequired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycshare_updates_required_total",
			Help: "Total number of mandatory updates requested by the regulator",
		}),
		CustomerRatings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycshare_customer_ratings_total",
			Help: "Total customer ratings recorded, labeled by value",
		}, []string{"value"}),
		BankRatings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycshare_bank_ratings_total",
			Help: "Total bank ratings recorded, labeled by value",
		}, []string{"value"}),
	}
}

// IncrementBanksRegistered increments the banks registered counter by 1
func (m *Metrics) IncrementBanksRegistered() {
	m.BanksRegistered.Inc()
}

func (m *Metrics) IncrementCustomersCreated() {
	m.CustomersCreated.Inc()
}

func (m *Metrics) IncrementOnboardings() {
	m.Onboardings.Inc()
}

func (m *Metrics) AddOnboardingFee(amount int64) {
	m.OnboardingFees.Add(float64(amount))
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

func (m *Metrics) AddFeePayouts(count int) {
	m.FeePayouts.Add(float64(count))
}

func (m *Metrics) IncrementDebtSettlements() {
	m.DebtSettlements.Inc()
}

func (m *Metrics) AddDebtAlerts(count int) {
	m.DebtAlerts.Add(float64(count))
}

func (m *Metrics) IncrementRepeatDrawsFired() {
	m.RepeatDrawsFired.Inc()
}

func (m *Metrics) IncrementMandatoryUpdates() {
	m.MandatoryUpdates.Inc()
}

func (m *Metrics) IncrementUpdatesRequired() {
	m.UpdatesRequired.Inc()
}

func (m *Metrics) IncrementCustomerRatings(value string) {
	m.CustomerRatings.WithLabelValues(value).Inc()
}

func (m *Metrics) IncrementBankRatings(value string) {
	m.BankRatings.WithLabelValues(value).Inc()
}
