package models

import (
	id "kycshare/pkg/domain"
)

// Account binds one institution to one customer. The ID is globally unique
// across all institutions and customers and is never reused. The debt map
// records what this account owes to peer accounts on the same customer,
// keyed by creditor account id; values are always non-negative.
type Account struct {
	ID      id.AccountID
	BankID  id.BankID
	Owner   id.Address
	Balance int64
	Debts   map[id.AccountID]int64
}

// NewAccount creates an account with an empty debt map.
func NewAccount(accountID id.AccountID, bankID id.BankID, owner id.Address) *Account {
	return &Account{
		ID:     accountID,
		BankID: bankID,
		Owner:  owner,
		Debts:  make(map[id.AccountID]int64),
	}
}

// DebtTo returns the recorded debt toward the given creditor account.
func (a *Account) DebtTo(creditor id.AccountID) int64 {
	return a.Debts[creditor]
}

// AddDebt increases the debt toward the creditor account.
func (a *Account) AddDebt(creditor id.AccountID, value int64) {
	if value == 0 {
		return
	}
	a.Debts[creditor] += value
}

// ReduceDebt lowers the debt toward the creditor, clamping at zero.
// An overpayment clears the debt; the excess is not refunded.
func (a *Account) ReduceDebt(creditor id.AccountID, amount int64) {
	current := a.Debts[creditor]
	if amount >= current {
		a.Debts[creditor] = 0
		return
	}
	a.Debts[creditor] = current - amount
}

// Clone returns a deep copy so stores can hand out aggregates without
// exposing internal state.
func (a *Account) Clone() *Account {
	debts := make(map[id.AccountID]int64, len(a.Debts))
	for k, v := range a.Debts {
		debts[k] = v
	}
	return &Account{
		ID:      a.ID,
		BankID:  a.BankID,
		Owner:   a.Owner,
		Balance: a.Balance,
		Debts:   debts,
	}
}
