// Package debt maintains the pairwise debt ledger between onboarded
// accounts: accrual on re-verification and mandatory updates, explicit
// settlement, and read-only queries.
package debt

import (
	"time"

	"kycshare/internal/events"
	"kycshare/internal/ledger/models"
	id "kycshare/pkg/domain"
)

// Accrue splits totalAmount across the customer's onboarded accounts and
// records debtValue = floor(totalAmount / onboarded_count) against every
// account except the creditor's own. It must run inside the customer's
// transaction scope; the caller persists the aggregate and emits the
// returned DebtAlert observations, which are the only externally observable
// trace of the accrual.
func Accrue(c *models.Customer, creditor id.AccountID, totalAmount int64, ts time.Time) []events.Event {
	n := int64(len(c.Onboarded))
	if n == 0 {
		return nil
	}
	debtValue := totalAmount / n
	if debtValue == 0 {
		return nil
	}

	var alerts []events.Event
	for _, account := range c.Onboarded {
		if account.ID == creditor {
			continue
		}
		account.AddDebt(creditor, debtValue)
		alerts = append(alerts, events.NewDebtAlert(c.ID, account.ID, account.Owner, creditor, debtValue, ts))
	}
	return alerts
}
