package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycshare/internal/debt"
	"kycshare/internal/events"
	"kycshare/internal/ledger"
	ledgerstore "kycshare/internal/ledger/store"
	"kycshare/internal/onboarding"
	"kycshare/internal/platform/health"
	"kycshare/internal/platform/logger"
	"kycshare/internal/platform/middleware"
	"kycshare/internal/registry"
	"kycshare/internal/reputation"
	"kycshare/internal/reverify"
	id "kycshare/pkg/domain"
)

const (
	testSigningKey   = "transport-test-key"
	regulatorSubject = "regulator"
)

type fixture struct {
	srv     *httptest.Server
	journal *events.InMemoryStore
}

// newFixture stands up the full stack on an in-memory store with a
// deterministic re-verification draw.
func newFixture(t *testing.T, draw int) *fixture {
	t.Helper()

	log := logger.New()
	store := ledgerstore.NewInMemory()
	tx := ledger.NewShardedTx(store)
	journal := events.NewInMemoryStore()
	publisher := events.NewPublisher(journal)

	source := reverify.DrawFunc(func(id.CustomerID, id.AccountID, string) int { return draw })

	handler := NewHandler(
		registry.NewService(tx, log),
		onboarding.NewService(tx, reverify.NewTrigger(source), publisher, log),
		debt.NewService(tx, log),
		reverify.NewService(tx, publisher, []id.Address{regulatorSubject}, log),
		reputation.NewService(tx, log),
		publisher,
		log,
	)
	router := NewRouter(handler, log, RouterConfig{
		Validator: middleware.NewHMACValidator(testSigningKey),
		Health:    health.New("test"),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, journal: journal}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

// do issues an authenticated JSON request and decodes the response body.
func (f *fixture) do(t *testing.T, method, path, subject string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, subject))
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// seedConsortium registers two banks and creates the customer through the
// API so later tests exercise real end-to-end flows.
func (f *fixture) seedConsortium(t *testing.T) {
	t.Helper()

	status, _ := f.do(t, http.MethodPost, "/banks", "addr-a", map[string]any{"bank_id": "bank-a"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = f.do(t, http.MethodPost, "/banks", "addr-b", map[string]any{"bank_id": "bank-b"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = f.do(t, http.MethodPost, "/customers", "addr-a", map[string]any{
		"bank_id":            "bank-a",
		"account_id":         "acct-a",
		"customer_id":        "cust-1",
		"kyc_price":          100,
		"repeat_probability": 0,
		"doc_hash":           "hash-1",
		"payment":            0,
	})
	require.Equal(t, http.StatusCreated, status)
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	f := newFixture(t, 50)

	status, body := f.do(t, http.MethodPost, "/banks", "", map[string]any{"bank_id": "bank-a"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", body["error"])
}

func TestRouter_RegisterBank(t *testing.T) {
	f := newFixture(t, 50)

	status, _ := f.do(t, http.MethodPost, "/banks", "addr-a", map[string]any{"bank_id": "bank-a"})
	assert.Equal(t, http.StatusCreated, status)

	status, body := f.do(t, http.MethodPost, "/banks", "addr-b", map[string]any{"bank_id": "bank-a"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "duplicate_bank", body["error"])

	status, body = f.do(t, http.MethodGet, "/banks/bank-a", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bank-a", body["id"])
	assert.Equal(t, true, body["registered"])
}

func TestRouter_OnboardingFlow(t *testing.T) {
	f := newFixture(t, 50)
	f.seedConsortium(t)

	status, body := f.do(t, http.MethodGet, "/customers/cust-1", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(100), body["cumulative_kyc_cost"])
	assert.Equal(t, float64(50), body["next_fee"])

	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/onboard", "addr-b", map[string]any{
		"bank_id":    "bank-b",
		"account_id": "acct-b",
		"payment":    50,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = f.do(t, http.MethodGet, "/customers/cust-1", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	onboarded, ok := body["onboarded"].([]any)
	require.True(t, ok)
	assert.Len(t, onboarded, 2)

	status, body = f.do(t, http.MethodGet, "/customers/cust-1/resolve-account", "addr-b", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "acct-b", body["account_id"])
	assert.Equal(t, float64(1), body["position"])
}

func TestRouter_OnboardingErrorMapping(t *testing.T) {
	f := newFixture(t, 50)
	f.seedConsortium(t)

	cases := []struct {
		name       string
		method     string
		path       string
		subject    string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name:    "genesis with attached payment",
			method:  http.MethodPost,
			path:    "/customers",
			subject: "addr-a",
			body: map[string]any{
				"bank_id": "bank-a", "account_id": "acct-x", "customer_id": "cust-2",
				"kyc_price": 100, "doc_hash": "h", "payment": 10,
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "nonzero_fee_required",
		},
		{
			name:    "caller does not own the bank",
			method:  http.MethodPost,
			path:    "/customers",
			subject: "addr-b",
			body: map[string]any{
				"bank_id": "bank-a", "account_id": "acct-x", "customer_id": "cust-2",
				"kyc_price": 100, "doc_hash": "h", "payment": 0,
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "caller_mismatch",
		},
		{
			name:    "onboarding an unknown customer",
			method:  http.MethodPost,
			path:    "/customers/cust-404/onboard",
			subject: "addr-b",
			body: map[string]any{
				"bank_id": "bank-b", "account_id": "acct-b", "payment": 50,
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:    "unregistered bank",
			method:  http.MethodPost,
			path:    "/customers/cust-1/onboard",
			subject: "addr-c",
			body: map[string]any{
				"bank_id": "bank-c", "account_id": "acct-c", "payment": 50,
			},
			wantStatus: http.StatusPreconditionFailed,
			wantCode:   "bank_not_registered",
		},
		{
			name:    "underpaid entry fee",
			method:  http.MethodPost,
			path:    "/customers/cust-1/onboard",
			subject: "addr-b",
			body: map[string]any{
				"bank_id": "bank-b", "account_id": "acct-b", "payment": 49,
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "insufficient_fee",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := f.do(t, tc.method, tc.path, tc.subject, tc.body)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, body["error"])
		})
	}
}

func TestRouter_RepeatDrawEmitsEvents(t *testing.T) {
	// A constant draw of 0 fires on every non-genesis onboarding.
	f := newFixture(t, 0)

	status, _ := f.do(t, http.MethodPost, "/banks", "addr-a", map[string]any{"bank_id": "bank-a"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = f.do(t, http.MethodPost, "/banks", "addr-b", map[string]any{"bank_id": "bank-b"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = f.do(t, http.MethodPost, "/customers", "addr-a", map[string]any{
		"bank_id": "bank-a", "account_id": "acct-a", "customer_id": "cust-1",
		"kyc_price": 100, "repeat_probability": 100, "doc_hash": "hash-1", "payment": 0,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/onboard", "addr-b", map[string]any{
		"bank_id": "bank-b", "account_id": "acct-b", "payment": 50,
	})
	require.Equal(t, http.StatusCreated, status)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/customers/cust-1/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "addr-a"))
	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []events.Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, events.TypeRepeatKYCRequired, list[0].Type)
	assert.Equal(t, events.TypeDebtAlert, list[1].Type)
	assert.Equal(t, int64(50), list[1].Value)
}

func TestRouter_DebtSettlementAndQuery(t *testing.T) {
	f := newFixture(t, 0)

	status, _ := f.do(t, http.MethodPost, "/banks", "addr-a", map[string]any{"bank_id": "bank-a"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = f.do(t, http.MethodPost, "/banks", "addr-b", map[string]any{"bank_id": "bank-b"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = f.do(t, http.MethodPost, "/customers", "addr-a", map[string]any{
		"bank_id": "bank-a", "account_id": "acct-a", "customer_id": "cust-1",
		"kyc_price": 100, "repeat_probability": 100, "doc_hash": "hash-1", "payment": 0,
	})
	require.Equal(t, http.StatusCreated, status)
	// The fired repeat accrues a 50 debt from acct-a toward acct-b.
	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/onboard", "addr-b", map[string]any{
		"bank_id": "bank-b", "account_id": "acct-b", "payment": 50,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := f.do(t, http.MethodGet, "/customers/cust-1/debts?debtor=acct-a&creditor=acct-b", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(50), body["value"])

	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/debts/settle", "addr-a", map[string]any{
		"debtor_account_id": "acct-a", "creditor_account_id": "acct-b", "amount": 30,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, http.MethodGet, "/customers/cust-1/debts?debtor=acct-a&creditor=acct-b", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(20), body["value"])
}

func TestRouter_MandatoryUpdateWorkflow(t *testing.T) {
	f := newFixture(t, 50)
	f.seedConsortium(t)

	// Only the regulator may flag the customer.
	status, body := f.do(t, http.MethodPost, "/customers/cust-1/require-update", "addr-a", map[string]any{"flag": true})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", body["error"])

	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/require-update", regulatorSubject, map[string]any{"flag": true})
	require.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/update-flag", "addr-a", map[string]any{"bank_id": "bank-a"})
	require.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/doc-package", "addr-a", map[string]any{
		"bank_id": "bank-a", "new_hash": "hash-2", "update_cost": 60,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, http.MethodGet, "/customers/cust-1", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["require_update"])
	assert.Equal(t, false, body["update_in_progress"])
}

func TestRouter_Ratings(t *testing.T) {
	f := newFixture(t, 50)
	f.seedConsortium(t)

	status, body := f.do(t, http.MethodPost, "/customers/cust-1/ratings", "addr-a", map[string]any{
		"account_id": "acct-a", "value": 8,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, http.MethodGet, "/customers/cust-1/rating", "addr-a", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(8), body["average"])
	assert.Equal(t, float64(1), body["count"])

	status, body = f.do(t, http.MethodPost, "/customers/cust-1/ratings", "addr-a", map[string]any{
		"account_id": "acct-a", "value": 11,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "rating_out_of_range", body["error"])

	// bank-b never performed the verification for cust-1, so bank-a cannot
	// rate it; onboard bank-b first so it operates with the customer.
	status, _ = f.do(t, http.MethodPost, "/customers/cust-1/onboard", "addr-b", map[string]any{
		"bank_id": "bank-b", "account_id": "acct-b", "payment": 50,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = f.do(t, http.MethodPost, "/banks/bank-b/ratings", "addr-a", map[string]any{
		"from_bank_id": "bank-a", "customer_id": "cust-1", "value": 7,
	})
	assert.Equal(t, http.StatusPreconditionFailed, status)
	assert.Equal(t, "not_eligible_to_rate", body["error"])

	status, _ = f.do(t, http.MethodPost, "/banks/bank-a/ratings", "addr-b", map[string]any{
		"from_bank_id": "bank-b", "customer_id": "cust-1", "value": 7,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, http.MethodGet, "/banks/bank-a/rating", "addr-b", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(7), body["average"])
}

func TestRouter_RejectsMalformedBody(t *testing.T) {
	f := newFixture(t, 50)

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/banks", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "addr-a"))

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_HealthAndMetricsBypassAuth(t *testing.T) {
	f := newFixture(t, 50)

	for _, path := range []string{"/health", "/health/live", "/metrics"} {
		resp, err := f.srv.Client().Get(f.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, fmt.Sprintf("path %s", path))
	}
}
