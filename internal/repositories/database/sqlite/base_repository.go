// Package sqlite stores transactions and goals in a single SQLite file through modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
)

// timeLayout is fixed width so that text comparison matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *sql.DB
}

type scanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func formatOptionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseOptionalTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// jsonText stores raw JSON as TEXT, nil becoming NULL.
func jsonText(raw []byte) any {
	if raw == nil {
		return nil
	}
	return string(raw)
}

func jsonBytes(ns sql.NullString) []byte {
	if !ns.Valid {
		return nil
	}
	return []byte(ns.String)
}

// missingOrConflict explains a conditional write that touched no row.
func (r *BaseRepository) missingOrConflict(ctx context.Context, existsQuery, id, what string) error {
	var one int
	err := r.DB.QueryRowContext(ctx, existsQuery, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(what + " " + id + " not found")
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to check "+what+" "+id, err)
	}
	return apperrors.NewConflictError(what + " " + id + " was modified concurrently")
}
