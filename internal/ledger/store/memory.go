// Package store holds the in-memory implementation of the ledger store.
package store

import (
	"context"
	"fmt"
	"sync"

	"kycshare/internal/ledger/models"
	"kycshare/internal/sentinel"
	id "kycshare/pkg/domain"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory keeps the full consortium state in process memory. Aggregates are
// cloned on the way in and out so callers never alias stored state; the
// per-customer transaction layer provides linearization on top.
type InMemory struct {
	mu         sync.RWMutex
	banks      map[id.BankID]*models.Bank
	customers  map[id.CustomerID]*models.Customer
	accountIDs map[id.AccountID]struct{}
}

// NewInMemory creates an empty in-memory ledger store.
func NewInMemory() *InMemory {
	return &InMemory{
		banks:      make(map[id.BankID]*models.Bank),
		customers:  make(map[id.CustomerID]*models.Customer),
		accountIDs: make(map[id.AccountID]struct{}),
	}
}

// CreateBank atomically creates the bank if the id is not already registered.
func (s *InMemory) CreateBank(_ context.Context, bank *models.Bank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.banks[bank.ID]; exists {
		return fmt.Errorf("bank id must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.banks[bank.ID] = bank.Clone()
	return nil
}

func (s *InMemory) FindBank(_ context.Context, bankID id.BankID) (*models.Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bank, ok := s.banks[bankID]
	if !ok {
		return nil, ErrNotFound
	}
	return bank.Clone(), nil
}

// UpdateBank applies fn to the stored bank under the write lock.
func (s *InMemory) UpdateBank(_ context.Context, bankID id.BankID, fn func(*models.Bank) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bank, ok := s.banks[bankID]
	if !ok {
		return ErrNotFound
	}
	return fn(bank)
}

// CreateCustomer atomically creates the aggregate if the id is unused.
func (s *InMemory) CreateCustomer(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.ID]; exists {
		return fmt.Errorf("customer id must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.customers[customer.ID] = customer.Clone()
	return nil
}

func (s *InMemory) FindCustomer(_ context.Context, customerID id.CustomerID) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[customerID]
	if !ok {
		return nil, ErrNotFound
	}
	return customer.Clone(), nil
}

func (s *InMemory) SaveCustomer(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; !ok {
		return ErrNotFound
	}
	s.customers[customer.ID] = customer.Clone()
	return nil
}

// ReserveAccountID marks the id used. Account ids are global and never reused.
func (s *InMemory) ReserveAccountID(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accountIDs[accountID]; exists {
		return fmt.Errorf("account id must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.accountIDs[accountID] = struct{}{}
	return nil
}

func (s *InMemory) AccountIDUsed(_ context.Context, accountID id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.accountIDs[accountID]
	return exists, nil
}

func (s *InMemory) CustomerCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}
