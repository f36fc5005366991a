package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository on top of one SQLite handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newTransactionRepository(db),
		GoalRepo:        newGoalRepository(db),
	}
}
