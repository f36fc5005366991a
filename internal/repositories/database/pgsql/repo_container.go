package pgsql

import (
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories on top of a pool.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(db),
		GoalRepo:        newPgxGoalRepository(db),
	}
}
