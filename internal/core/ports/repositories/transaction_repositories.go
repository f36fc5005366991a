package repositories

import (
	"context"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a page of a user's transactions ordered by date
	// descending, then creation time descending. It returns the token of the next page, if any.
	ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsInRange retrieves every transaction of a user dated inside the range.
	FindTransactionsInRange(ctx context.Context, userID string, dateRange domain.DateRange) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction replaces a stored transaction if its version still equals txn.Version.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
