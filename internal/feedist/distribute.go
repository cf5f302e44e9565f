// Package feedist redistributes a customer's pooled onboarding fees across
// the accounts already onboarded on that customer.
package feedist

import (
	"kycshare/internal/ledger/models"
	id "kycshare/pkg/domain"
)

// Payout is one transfer made during a distribution pass.
type Payout struct {
	AccountID id.AccountID
	Amount    int64
}

// Distribute pays out the customer's pooled balance in onboarding order and
// must run inside the customer's transaction scope.
//
// reward = floor(balance / onboarded_count). Each account is paid the reward
// while the remaining balance covers it; an account reached with less than
// one reward remaining absorbs the rest, and accounts after it in the same
// pass receive a zero-value payment. Which account absorbs the remainder is
// therefore determined by iteration order and the balance trajectory. That
// non-uniformity is part of the protocol, not a bug to fix: altering it
// changes the observable conservation properties.
//
// No value is created or destroyed: the sum of payouts plus the balance left
// on the customer equals the balance at entry.
func Distribute(c *models.Customer) []Payout {
	if c.Balance == 0 || len(c.Onboarded) == 0 {
		return nil
	}

	reward := c.Balance / int64(len(c.Onboarded))
	payouts := make([]Payout, 0, len(c.Onboarded))
	for _, account := range c.Onboarded {
		pay := reward
		if c.Balance < reward {
			pay = c.Balance
		}
		c.Balance -= pay
		account.Balance += pay
		payouts = append(payouts, Payout{AccountID: account.ID, Amount: pay})
	}
	return payouts
}

// Total sums the amounts of a distribution pass.
func Total(payouts []Payout) int64 {
	var sum int64
	for _, p := range payouts {
		sum += p.Amount
	}
	return sum
}
