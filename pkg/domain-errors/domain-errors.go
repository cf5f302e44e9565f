package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeInternal     Code = "internal_error"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeTimeout      Code = "timeout"

	// Identity failures: duplicate or unknown ids, caller mismatch.
	CodeDuplicateBank      Code = "duplicate_bank"
	CodeDuplicateCustomer  Code = "duplicate_customer"
	CodeDuplicateAccountID Code = "duplicate_account_id"
	CodeUnknownAccount     Code = "unknown_account"
	CodeAccountMismatch    Code = "account_mismatch"
	CodeCallerMismatch     Code = "caller_mismatch"

	// State failures: operation invalid for the customer's current state.
	CodeAlreadyOnboarded    Code = "already_onboarded"
	CodeNoPriorOnboarding   Code = "no_prior_onboarding"
	CodeBankNotRegistered   Code = "bank_not_registered"
	CodeUpdateNotRequired   Code = "update_not_required"
	CodeUpdateNotInProgress Code = "update_not_in_progress"
	CodeWrongDesignatedBank Code = "wrong_designated_bank"
	CodeNotOperating        Code = "not_operating_with_customer"
	CodeNotEligibleToRate   Code = "not_eligible_to_rate"

	// Value failures: fee, cost, rating and document validation.
	CodeNonZeroFee           Code = "nonzero_fee_required"
	CodeInsufficientFee      Code = "insufficient_fee"
	CodeCostExceedsLimit     Code = "cost_exceeds_limit"
	CodeHashUnchanged        Code = "hash_unchanged"
	CodeEmptyDocumentPackage Code = "empty_document_package"
	CodeRatingOutOfRange     Code = "rating_out_of_range"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		// Preserve the original domain code, update message
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
