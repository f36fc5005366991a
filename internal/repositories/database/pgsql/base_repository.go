package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the repositories use. pgxmock pools satisfy it as well.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool DB
}

// scanner is implemented by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// missingOrConflict explains a conditional write that touched no row: the row is
// either gone (not found) or its version moved (conflict).
func (r *BaseRepository) missingOrConflict(ctx context.Context, existsQuery, id, what string) error {
	var one int
	err := r.Pool.QueryRow(ctx, existsQuery, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what + " " + id + " not found")
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to check "+what+" "+id, err)
	}
	return apperrors.NewConflictError(what + " " + id + " was modified concurrently")
}
