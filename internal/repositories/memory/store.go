// Package memory keeps transactions and goals in process memory. It backs tests and
// the STORAGE_BACKEND=memory mode; nothing survives a restart.
package memory

import (
	"sync"

	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
)

// Store holds the stored models. Entries are kept in their storage form so every read
// decodes a fresh copy and callers never share slices with the store.
type Store struct {
	mu           sync.RWMutex
	transactions map[string]models.Transaction
	goals        map[string]models.SavingsGoal
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]models.Transaction),
		goals:        make(map[string]models.SavingsGoal),
	}
}

// NewRepositoryProvider wires both repositories on one store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: &TransactionRepository{store: store},
		GoalRepo:        &GoalRepository{store: store},
	}
}
