// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	dErrors "kycshare/pkg/domain-errors"
)

// Distinct ID types - the compiler prevents passing a BankID where an
// AccountID is expected. Identifiers are caller-chosen opaque strings
// (the consortium substrate uses addresses), so there is no UUID parsing.
type (
	BankID     string
	CustomerID string
	AccountID  string
)

// Address is a resolved caller identity. One address owns at most one
// account per customer, and at most one bank registration.
type Address string

const maxIDLength = 128

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseBankID(s string) (BankID, error) {
	if err := validateID(s, "bank ID"); err != nil {
		return "", err
	}
	return BankID(s), nil
}

func ParseCustomerID(s string) (CustomerID, error) {
	if err := validateID(s, "customer ID"); err != nil {
		return "", err
	}
	return CustomerID(s), nil
}

func ParseAccountID(s string) (AccountID, error) {
	if err := validateID(s, "account ID"); err != nil {
		return "", err
	}
	return AccountID(s), nil
}

// String methods - for logging and debugging.

func (id BankID) String() string     { return string(id) }
func (id CustomerID) String() string { return string(id) }
func (id AccountID) String() string  { return string(id) }
func (a Address) String() string     { return string(a) }

// IsNil checks - used for service-layer validation.

func (id BankID) IsNil() bool     { return id == "" }
func (id CustomerID) IsNil() bool { return id == "" }
func (id AccountID) IsNil() bool  { return id == "" }
func (a Address) IsNil() bool     { return a == "" }

// validateID is the shared validation logic for opaque string identifiers.
func validateID(s, label string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if len(s) > maxIDLength {
		return dErrors.New(dErrors.CodeInvalidInput, label+" exceeds maximum length")
	}
	return nil
}
