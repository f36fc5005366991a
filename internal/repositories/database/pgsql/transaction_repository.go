package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
	"github.com/SscSPs/empower_finance_app/internal/utils/mapping"
	"github.com/SscSPs/empower_finance_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, user_id, type, category, amount, description, txn_date,
	tags, recurring_details, attachments, location,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db DB) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row scanner) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Type,
		&m.Category,
		&m.Amount,
		&m.Description,
		&m.Date,
		&m.Tags,
		&m.RecurringDetails,
		&m.Attachments,
		&m.Location,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m)
}

// SaveTransaction inserts a new transaction row.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}

	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`
	_, err = r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Category,
		m.Amount,
		m.Description,
		m.Date,
		m.Tags,
		m.RecurringDetails,
		m.Attachments,
		m.Location,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByUser retrieves a page of transactions using keyset pagination on
// (txn_date, created_at, transaction_id), newest first.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	where, args := transactionFilterClause(userID, filter)
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(apperrors.FieldError{Field: "nextToken", Message: "is invalid"})
		}
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
		n := len(args)
		where = append(where, "(txn_date, created_at, transaction_id) < ($"+strconv.Itoa(n-2)+", $"+strconv.Itoa(n-1)+", $"+strconv.Itoa(n)+")")
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY txn_date DESC, created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(txns) > limit {
		// The token points to the last item included in this page.
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return txns, nextTokenVal, nil
}

// FindTransactionsInRange retrieves every transaction of a user inside the range, oldest first.
func (r *PgxTransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, dateRange domain.DateRange) ([]domain.Transaction, error) {
	where, args := transactionFilterClause(userID, domain.TransactionFilter{Range: dateRange})
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY txn_date, created_at, transaction_id;`
	return r.queryTransactions(ctx, query, args...)
}

// UpdateTransaction replaces the row if its stored version still matches.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}

	query := `
		UPDATE transactions
		SET type = $2, category = $3, amount = $4, description = $5, txn_date = $6,
		    tags = $7, recurring_details = $8, attachments = $9, location = $10,
		    last_updated_at = $11, last_updated_by = $12, version = version + 1
		WHERE transaction_id = $1 AND version = $13;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.Category,
		m.Amount,
		m.Description,
		m.Date,
		m.Tags,
		m.RecurringDetails,
		m.Attachments,
		m.Location,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, `SELECT 1 FROM transactions WHERE transaction_id = $1;`, m.TransactionID, "transaction")
	}
	return nil
}

// DeleteTransaction removes a transaction row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
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

// transactionFilterClause builds the WHERE conditions and positional args for a filter.
func transactionFilterClause(userID string, filter domain.TransactionFilter) ([]string, []any) {
	where := []string{"user_id = $1"}
	args := []any{userID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, cond+" $"+strconv.Itoa(len(args)))
	}
	if filter.Type != nil {
		add("type =", string(*filter.Type))
	}
	if filter.Category != nil {
		add("category =", *filter.Category)
	}
	if filter.Range.From != nil {
		add("txn_date >=", filter.Range.From.UTC())
	}
	if filter.Range.To != nil {
		add("txn_date <=", filter.Range.To.UTC())
	}
	return where, args
}
