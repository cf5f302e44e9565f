// Package httputil centralizes JSON encoding and domain error translation
// for the HTTP transport layer.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "kycshare/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError translates transport-agnostic domain errors into HTTP status
// codes and a JSON error envelope. Domain codes are stable strings and are
// surfaced verbatim as the "error" field.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		response := map[string]string{
			"error": string(domainErr.Code),
		}
		if domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), response)
		return
	}

	// Fallback for unexpected errors
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": string(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound, dErrors.CodeUnknownAccount:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput,
		dErrors.CodeNonZeroFee, dErrors.CodeInsufficientFee,
		dErrors.CodeCostExceedsLimit, dErrors.CodeHashUnchanged,
		dErrors.CodeEmptyDocumentPackage, dErrors.CodeRatingOutOfRange:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeDuplicateBank,
		dErrors.CodeDuplicateCustomer, dErrors.CodeDuplicateAccountID,
		dErrors.CodeAlreadyOnboarded:
		return http.StatusConflict
	case dErrors.CodeNoPriorOnboarding, dErrors.CodeBankNotRegistered,
		dErrors.CodeUpdateNotRequired, dErrors.CodeUpdateNotInProgress,
		dErrors.CodeNotOperating, dErrors.CodeNotEligibleToRate:
		return http.StatusPreconditionFailed
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden, dErrors.CodeWrongDesignatedBank,
		dErrors.CodeAccountMismatch, dErrors.CodeCallerMismatch:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes a JSON request body into the target type.
// Returns the decoded value and true on success. On failure, writes an error
// response and returns nil, false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return &req, true
}
