package models

import (
	id "kycshare/pkg/domain"
)

// Bank is one consortium institution. Its rating aggregate is maintained by
// peer institutions; an institution may be rated for a customer only when
// it actually performed the core verification for that customer.
type Bank struct {
	ID            id.BankID
	Owner         id.Address
	Registered    bool
	Rating        RatingAggregate
	RatingsByPeer map[id.BankID]int64
	Customers     map[id.CustomerID]bool
	KYCExecutions map[id.CustomerID]bool
	UpdateFlags   map[id.CustomerID]bool
}

// NewBank creates a registered bank with a zeroed rating aggregate.
func NewBank(bankID id.BankID, owner id.Address) *Bank {
	return &Bank{
		ID:            bankID,
		Owner:         owner,
		Registered:    true,
		RatingsByPeer: make(map[id.BankID]int64),
		Customers:     make(map[id.CustomerID]bool),
		KYCExecutions: make(map[id.CustomerID]bool),
		UpdateFlags:   make(map[id.CustomerID]bool),
	}
}

// OperatesWith reports whether the bank holds an account on the customer.
func (b *Bank) OperatesWith(customerID id.CustomerID) bool {
	return b.Customers[customerID]
}

// ExecutedKYC reports whether the bank performed the core verification for
// the customer (genesis onboarding, a fired re-verification, or a
// completed mandatory update).
func (b *Bank) ExecutedKYC(customerID id.CustomerID) bool {
	return b.KYCExecutions[customerID]
}

// MarkOnboarded records that the bank operates with the customer.
func (b *Bank) MarkOnboarded(customerID id.CustomerID) {
	b.Customers[customerID] = true
}

// MarkKYCExecuted records a performed verification for the customer.
func (b *Bank) MarkKYCExecuted(customerID id.CustomerID) {
	b.KYCExecutions[customerID] = true
}

// ApplyPeerRating records a 1-10 score from a peer institution with
// overwrite semantics and recomputes the floor average.
func (b *Bank) ApplyPeerRating(from id.BankID, value int64) {
	previous, rated := b.RatingsByPeer[from]
	b.RatingsByPeer[from] = value
	b.Rating.Apply(previous, value, !rated)
}

// Clone returns a deep copy.
func (b *Bank) Clone() *Bank {
	clone := *b
	clone.RatingsByPeer = copyMap(b.RatingsByPeer)
	clone.Customers = copyMap(b.Customers)
	clone.KYCExecutions = copyMap(b.KYCExecutions)
	clone.UpdateFlags = copyMap(b.UpdateFlags)
	return &clone
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
