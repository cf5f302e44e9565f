package models

import (
	id "kycshare/pkg/domain"
	dErrors "kycshare/pkg/domain-errors"
)

// Customer is the aggregate root for one verification-sharing group: the
// customer record plus its ordered onboarded accounts and their debt maps.
// All mutations of a Customer happen inside the per-customer transaction
// scope, so no partially-applied state is ever observable.
//
// # Invariants
//
//   - Registered is set exactly once at genesis and never cleared.
//   - DocumentHash is set at genesis and only mutated via the mandatory
//     update workflow.
//   - Onboarded is append-only; its order is the onboarding order.
//   - Balance and CumulativeKYCCost are non-negative.
//   - Rating.Average == Rating.Cumulative / Rating.Count when Count > 0.
type Customer struct {
	ID                id.CustomerID
	DocumentHash      string
	Registered        bool
	RequireUpdate     bool
	UpdateInProgress  bool
	UpdateBankID      id.BankID
	Balance           int64
	KYCPrice          int64
	CumulativeKYCCost int64
	RepeatProbability int
	KYCCount          int64
	Rating            RatingAggregate
	RatingsByBank     map[id.BankID]int64
	Onboarded         []*Account
}

// NewCustomer creates a customer at genesis onboarding with domain
// invariant checks. The first account is appended by the caller.
func NewCustomer(customerID id.CustomerID, kycPrice int64, repeatProbability int, docHash string) (*Customer, error) {
	if customerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "customer ID required")
	}
	if docHash == "" {
		return nil, dErrors.New(dErrors.CodeEmptyDocumentPackage, "document package hash required")
	}
	if kycPrice < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "kyc price must be non-negative")
	}
	if repeatProbability < 0 || repeatProbability > 100 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "repeat probability must be within [0,100]")
	}
	return &Customer{
		ID:                customerID,
		DocumentHash:      docHash,
		Registered:        true,
		KYCPrice:          kycPrice,
		CumulativeKYCCost: kycPrice,
		RepeatProbability: repeatProbability,
		KYCCount:          1,
		RatingsByBank:     make(map[id.BankID]int64),
	}, nil
}

// OnboardedCount returns the number of accounts in the onboarded list.
func (c *Customer) OnboardedCount() int {
	return len(c.Onboarded)
}

// NextFee is the pro-rated fee the next joiner must attach:
// floor(cumulative_kyc_cost / (n+1)). Floor division may undercharge the
// joiner relative to an exact share; that tolerance is part of the protocol.
func (c *Customer) NextFee() int64 {
	return c.CumulativeKYCCost / int64(len(c.Onboarded)+1)
}

// Append adds an account to the end of the onboarded list.
func (c *Customer) Append(a *Account) {
	c.Onboarded = append(c.Onboarded, a)
}

// AccountByID locates an onboarded account by id (linear scan in
// onboarding order) and returns it with its ledger position.
func (c *Customer) AccountByID(accountID id.AccountID) (*Account, int, bool) {
	for i, a := range c.Onboarded {
		if a.ID == accountID {
			return a, i, true
		}
	}
	return nil, 0, false
}

// AccountByOwner locates an onboarded account by caller identity.
func (c *Customer) AccountByOwner(owner id.Address) (*Account, int, bool) {
	for i, a := range c.Onboarded {
		if a.Owner == owner {
			return a, i, true
		}
	}
	return nil, 0, false
}

// AccountByBank locates an onboarded account by owning institution.
func (c *Customer) AccountByBank(bankID id.BankID) (*Account, int, bool) {
	for i, a := range c.Onboarded {
		if a.BankID == bankID {
			return a, i, true
		}
	}
	return nil, 0, false
}

// ApplyRating records a 1-10 score from the given institution with
// overwrite semantics and recomputes the floor average.
func (c *Customer) ApplyRating(bankID id.BankID, value int64) {
	previous, rated := c.RatingsByBank[bankID]
	c.RatingsByBank[bankID] = value
	c.Rating.Apply(previous, value, !rated)
}

// Clone returns a deep copy of the aggregate.
func (c *Customer) Clone() *Customer {
	ratings := make(map[id.BankID]int64, len(c.RatingsByBank))
	for k, v := range c.RatingsByBank {
		ratings[k] = v
	}
	onboarded := make([]*Account, len(c.Onboarded))
	for i, a := range c.Onboarded {
		onboarded[i] = a.Clone()
	}
	clone := *c
	clone.RatingsByBank = ratings
	clone.Onboarded = onboarded
	return &clone
}
