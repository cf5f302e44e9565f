// Package events carries the ledger's observation stream. Services emit an
// event for every externally observable consequence of a committed operation
// (debt accruals, fired re-verifications, regulator update requirements);
// institutions subscribe and react. The ledger guarantees emission, not
// delivery.
package events

import (
	"time"

	"github.com/google/uuid"

	id "kycshare/pkg/domain"
)

// Type discriminates ledger observations.
type Type string

const (
	// TypeDebtAlert is emitted once per debtor account on every accrual and
	// is the only externally observable trace of an accrual.
	TypeDebtAlert Type = "debt_alert"
	// TypeRepeatKYCRequired is emitted when the probabilistic trigger fires
	// on a non-genesis onboarding.
	TypeRepeatKYCRequired Type = "repeat_kyc_required"
	// TypeKYCUpdateRequired is emitted when the regulator flags a customer
	// for a mandatory document update.
	TypeKYCUpdateRequired Type = "kyc_update_required"
)

// Event is a single ledger observation. Keep it transport-agnostic so
// journal stores and broker sinks can fan out.
type Event struct {
	ID         uuid.UUID     `json:"id"`
	Type       Type          `json:"type"`
	Timestamp  time.Time     `json:"timestamp"`
	CustomerID id.CustomerID `json:"customer_id"`

	// Debt alert fields.
	DebtorAccountID   id.AccountID `json:"debtor_account_id,omitempty"`
	DebtorAddress     id.Address   `json:"debtor_address,omitempty"`
	CreditorAccountID id.AccountID `json:"creditor_account_id,omitempty"`
	Value             int64        `json:"value,omitempty"`

	// Re-verification fields.
	AccountID    id.AccountID `json:"account_id,omitempty"`
	DocumentHash string       `json:"document_hash,omitempty"`
}

// NewDebtAlert builds the per-debtor observation of a debt accrual.
func NewDebtAlert(customerID id.CustomerID, debtor id.AccountID, debtorAddr id.Address, creditor id.AccountID, value int64, ts time.Time) Event {
	return Event{
		ID:                uuid.New(),
		Type:              TypeDebtAlert,
		Timestamp:         ts,
		CustomerID:        customerID,
		DebtorAccountID:   debtor,
		DebtorAddress:     debtorAddr,
		CreditorAccountID: creditor,
		Value:             value,
	}
}

// NewRepeatKYCRequired builds the observation of a fired re-verification.
func NewRepeatKYCRequired(customerID id.CustomerID, accountID id.AccountID, docHash string, ts time.Time) Event {
	return Event{
		ID:           uuid.New(),
		Type:         TypeRepeatKYCRequired,
		Timestamp:    ts,
		CustomerID:   customerID,
		AccountID:    accountID,
		DocumentHash: docHash,
	}
}

// NewKYCUpdateRequired builds the observation of a regulator update flag.
func NewKYCUpdateRequired(customerID id.CustomerID, ts time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       TypeKYCUpdateRequired,
		Timestamp:  ts,
		CustomerID: customerID,
	}
}
