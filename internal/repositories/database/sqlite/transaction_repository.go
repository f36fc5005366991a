package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
	"github.com/SscSPs/empower_finance_app/internal/utils/mapping"
	"github.com/SscSPs/empower_finance_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, type, category, amount, description, txn_date,
	tags, recurring_details, attachments, location,
	created_at, created_by, last_updated_at, last_updated_by, version`

type TransactionRepository struct {
	BaseRepository
}

func newTransactionRepository(db *sql.DB) portsrepo.TransactionRepositoryFacade {
	return &TransactionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func scanTransaction(row scanner) (domain.Transaction, error) {
	var (
		m                                      models.Transaction
		amount, date, created, lastUpdated     string
		tags, recurring, attachments, location sql.NullString
	)
	err := row.Scan(
		&m.TransactionID, &m.UserID, &m.Type, &m.Category, &amount, &m.Description, &date,
		&tags, &recurring, &attachments, &location,
		&created, &m.CreatedBy, &lastUpdated, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	var errs []error
	var perr error
	if m.Amount, perr = decimal.NewFromString(amount); perr != nil {
		errs = append(errs, fmt.Errorf("amount: %w", perr))
	}
	if m.Date, perr = parseTime(date); perr != nil {
		errs = append(errs, fmt.Errorf("txn_date: %w", perr))
	}
	if m.CreatedAt, perr = parseTime(created); perr != nil {
		errs = append(errs, fmt.Errorf("created_at: %w", perr))
	}
	if m.LastUpdatedAt, perr = parseTime(lastUpdated); perr != nil {
		errs = append(errs, fmt.Errorf("last_updated_at: %w", perr))
	}
	if err := errors.Join(errs...); err != nil {
		return domain.Transaction{}, err
	}

	m.Tags = jsonBytes(tags)
	m.RecurringDetails = jsonBytes(recurring)
	m.Attachments = jsonBytes(attachments)
	m.Location = jsonBytes(location)
	return mapping.ToDomainTransaction(m)
}

// SaveTransaction inserts a new transaction row.
func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err = r.DB.ExecContext(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Category,
		m.Amount.String(),
		m.Description,
		formatTime(m.Date),
		jsonText(m.Tags),
		jsonText(m.RecurringDetails),
		jsonText(m.Attachments),
		jsonText(m.Location),
		formatTime(m.CreatedAt),
		m.CreatedBy,
		formatTime(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = ?;`
	txn, err := scanTransaction(r.DB.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByUser pages through a user's transactions, newest first.
func (r *TransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	where, args := transactionFilterClause(userID, filter)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(apperrors.FieldError{Field: "nextToken", Message: "is invalid"})
		}
		where = append(where, "(txn_date, created_at, transaction_id) < (?, ?, ?)")
		args = append(args, formatTime(cursor.Date), formatTime(cursor.CreatedAt), cursor.ID)
	}
	args = append(args, limit+1)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY txn_date DESC, created_at DESC, transaction_id DESC LIMIT ?;`
	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.TransactionID)
		next = &token
		txns = txns[:limit]
	}
	return txns, next, nil
}

// FindTransactionsInRange retrieves every transaction of a user inside the range, oldest first.
func (r *TransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, dateRange domain.DateRange) ([]domain.Transaction, error) {
	where, args := transactionFilterClause(userID, domain.TransactionFilter{Range: dateRange})
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY txn_date, created_at, transaction_id;`
	return r.queryTransactions(ctx, query, args...)
}

// UpdateTransaction replaces the row if its stored version still matches.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}

	query := `
		UPDATE transactions
		SET type = ?, category = ?, amount = ?, description = ?, txn_date = ?,
		    tags = ?, recurring_details = ?, attachments = ?, location = ?,
		    last_updated_at = ?, last_updated_by = ?, version = version + 1
		WHERE transaction_id = ? AND version = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Type,
		m.Category,
		m.Amount.String(),
		m.Description,
		formatTime(m.Date),
		jsonText(m.Tags),
		jsonText(m.RecurringDetails),
		jsonText(m.Attachments),
		jsonText(m.Location),
		formatTime(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.TransactionID,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if n == 0 {
		return r.missingOrConflict(ctx, `SELECT 1 FROM transactions WHERE transaction_id = ?;`, m.TransactionID, "transaction")
	}
	return nil
}

// DeleteTransaction removes a transaction row.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = ?;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	} else if n == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return txns, nil
}

func transactionFilterClause(userID string, filter domain.TransactionFilter) ([]string, []any) {
	where := []string{"user_id = ?"}
	args := []any{userID}
	if filter.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Range.From != nil {
		where = append(where, "txn_date >= ?")
		args = append(args, formatTime(*filter.Range.From))
	}
	if filter.Range.To != nil {
		where = append(where, "txn_date <= ?")
		args = append(args, formatTime(*filter.Range.To))
	}
	return where, args
}
