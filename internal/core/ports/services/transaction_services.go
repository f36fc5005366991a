package services

import (
	"context"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger entries
type TransactionReaderSvc interface {
	// GetTransaction retrieves a transaction owned by the user.
	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of the user's transactions, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for ledger entries
type TransactionWriterSvc interface {
	// CreateTransaction validates and records a new transaction.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update, validating the merged record.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction owned by the user.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// LedgerCalculatorSvc defines the ledger aggregations
type LedgerCalculatorSvc interface {
	// BalanceFor sums income and expense over the optional range.
	BalanceFor(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Balance, error)

	// MonthlyBreakdown groups one calendar month by type and category.
	MonthlyBreakdown(ctx context.Context, userID string, year int, month int) (domain.MonthlyBreakdown, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	LedgerCalculatorSvc
}
