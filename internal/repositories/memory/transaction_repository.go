package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
	"github.com/SscSPs/empower_finance_app/internal/utils/mapping"
	"github.com/SscSPs/empower_finance_app/internal/utils/pagination"
)

type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.transactions[m.TransactionID]; exists {
		return apperrors.NewConflictError("transaction " + m.TransactionID + " already exists")
	}
	r.store.transactions[m.TransactionID] = m
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	m, ok := r.store.transactions[transactionID]
	r.store.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}

	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode transaction "+transactionID, err)
	}
	return &txn, nil
}

func (r *TransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(apperrors.FieldError{Field: "nextToken", Message: "is invalid"})
		}
		cursor = &c
	}

	txns, err := r.matching(userID, filter)
	if err != nil {
		return nil, nil, err
	}
	slices.SortFunc(txns, compareNewestFirst)

	page := make([]domain.Transaction, 0, limit)
	var next *string
	for _, txn := range txns {
		if cursor != nil && !cursor.After(txn.Date, txn.CreatedAt, txn.TransactionID) {
			continue
		}
		if len(page) == limit {
			last := page[limit-1]
			token := pagination.EncodeToken(last.Date, last.CreatedAt, last.TransactionID)
			next = &token
			break
		}
		page = append(page, txn)
	}
	return page, next, nil
}

func (r *TransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, dateRange domain.DateRange) ([]domain.Transaction, error) {
	txns, err := r.matching(userID, domain.TransactionFilter{Range: dateRange})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(txns, func(a, b domain.Transaction) int { return -compareNewestFirst(a, b) })
	return txns, nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.transactions[m.TransactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction " + m.TransactionID + " not found")
	}
	if current.Version != m.Version {
		return apperrors.NewConflictError("transaction " + m.TransactionID + " was modified concurrently")
	}

	// Ownership and creation audit are immutable.
	m.UserID = current.UserID
	m.CreatedAt = current.CreatedAt
	m.CreatedBy = current.CreatedBy
	m.Version = current.Version + 1
	r.store.transactions[m.TransactionID] = m
	return nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.transactions[transactionID]; !ok {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	delete(r.store.transactions, transactionID)
	return nil
}

// matching decodes every transaction of the user that passes the filter.
func (r *TransactionRepository) matching(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	candidates := make([]models.Transaction, 0, len(r.store.transactions))
	for _, m := range r.store.transactions {
		if m.UserID == userID {
			candidates = append(candidates, m)
		}
	}
	r.store.mu.RUnlock()

	out := []domain.Transaction{}
	for _, m := range candidates {
		if filter.Type != nil && m.Type != string(*filter.Type) {
			continue
		}
		if filter.Category != nil && m.Category != *filter.Category {
			continue
		}
		if !filter.Range.Contains(m.Date) {
			continue
		}
		txn, err := mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode transaction "+m.TransactionID, err)
		}
		out = append(out, txn)
	}
	return out, nil
}

// compareNewestFirst orders by date, then creation time, then id, all descending.
func compareNewestFirst(a, b domain.Transaction) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.TransactionID, a.TransactionID)
}
