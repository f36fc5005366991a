package domain

import (
	"time"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
)

// DateRange is an optional, inclusive time window. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Validate rejects ranges whose start is after their end.
func (r DateRange) Validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return apperrors.NewInvalidRangeError("from", "must not be after to")
	}
	return nil
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// MonthRange returns the UTC range covering the given calendar month.
func MonthRange(year int, month time.Month) DateRange {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return DateRange{From: &from, To: &to}
}
