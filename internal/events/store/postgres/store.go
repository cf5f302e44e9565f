// Package postgres persists the ledger event journal in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"kycshare/internal/events"
	id "kycshare/pkg/domain"
)

// Store implements events.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL journal store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an event into the ledger_events table. Inserts are
// idempotent on the event id so redelivery cannot duplicate journal rows.
func (s *Store) Append(ctx context.Context, event events.Event) error {
	query := `
		INSERT INTO ledger_events (
			id, event_type, occurred_at, customer_id,
			debtor_account_id, debtor_address, creditor_account_id, value,
			account_id, document_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		string(event.Type),
		event.Timestamp,
		string(event.CustomerID),
		string(event.DebtorAccountID),
		string(event.DebtorAddress),
		string(event.CreditorAccountID),
		event.Value,
		string(event.AccountID),
		event.DocumentHash,
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// ListByCustomer returns all journaled events for a customer in append order.
func (s *Store) ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]events.Event, error) {
	query := `
		SELECT id, event_type, occurred_at, customer_id,
		       debtor_account_id, debtor_address, creditor_account_id, value,
		       account_id, document_hash
		FROM ledger_events
		WHERE customer_id = $1
		ORDER BY occurred_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, string(customerID))
	if err != nil {
		return nil, fmt.Errorf("query ledger events: %w", err)
	}
	defer rows.Close()

	var out []events.Event
	for rows.Next() {
		var (
			e                                 events.Event
			eventType                         string
			customer, debtor, debtorAddr      string
			creditor, account                 string
		)
		if err := rows.Scan(
			&e.ID, &eventType, &e.Timestamp, &customer,
			&debtor, &debtorAddr, &creditor, &e.Value,
			&account, &e.DocumentHash,
		); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		e.Type = events.Type(eventType)
		e.CustomerID = id.CustomerID(customer)
		e.DebtorAccountID = id.AccountID(debtor)
		e.DebtorAddress = id.Address(debtorAddr)
		e.CreditorAccountID = id.AccountID(creditor)
		e.AccountID = id.AccountID(account)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}
	return out, nil
}
