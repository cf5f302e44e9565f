package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "kycshare/pkg/domain"
)

const testSigningKey = "test-signing-key"

func signToken(t *testing.T, subject, key string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
	})
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func callerEcho(t *testing.T) (http.Handler, *id.Address) {
	t.Helper()
	var got id.Address
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RequireCaller(NewHMACValidator(testSigningKey), logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = GetCaller(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
	return handler, &got
}

func TestRequireCaller_ValidToken(t *testing.T) {
	handler, caller := callerEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "addr-a", testSigningKey))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id.Address("addr-a"), *caller)
}

func TestRequireCaller_MissingHeader(t *testing.T) {
	handler, _ := callerEcho(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireCaller_BadSignature(t *testing.T) {
	handler, _ := callerEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "addr-a", "wrong-key"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCaller_EmptySubject(t *testing.T) {
	handler, _ := callerEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "", testSigningKey))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
