package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record an income or expense.
// Field constraints are checked by the service so that all violations are reported together.
type CreateTransactionRequest struct {
	Type             domain.TransactionType   `json:"type"`
	Category         string                   `json:"category"`
	Amount           decimal.Decimal          `json:"amount"`
	Description      string                   `json:"description"`
	Date             *time.Time               `json:"date"` // Optional, defaults to now
	Tags             []string                 `json:"tags"`
	RecurringDetails *domain.RecurringDetails `json:"recurringDetails"`
	Attachments      []domain.Attachment      `json:"attachments"`
	Location         *domain.Location         `json:"location"`
}

// UpdateTransactionRequest defines the fields allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Type             *domain.TransactionType  `json:"type"`
	Category         *string                  `json:"category"`
	Amount           *decimal.Decimal         `json:"amount"`
	Description      *string                  `json:"description"`
	Date             *time.Time               `json:"date"`
	Tags             []string                 `json:"tags"` // nil keeps the current tags
	RecurringDetails *domain.RecurringDetails `json:"recurringDetails"`
	Attachments      []domain.Attachment      `json:"attachments"`
	Location         *domain.Location         `json:"location"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string                   `json:"transactionID"`
	UserID           string                   `json:"userID"`
	Type             domain.TransactionType   `json:"type"`
	Category         string                   `json:"category"`
	Amount           decimal.Decimal          `json:"amount"`
	Description      string                   `json:"description"`
	Date             time.Time                `json:"date"`
	Tags             []string                 `json:"tags"`
	RecurringDetails *domain.RecurringDetails `json:"recurringDetails,omitempty"`
	Attachments      []domain.Attachment      `json:"attachments,omitempty"`
	Location         *domain.Location         `json:"location,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	LastUpdatedAt    time.Time                `json:"lastUpdatedAt"`
}

// ListTransactionsParams holds the query parameters for listing transactions.
type ListTransactionsParams struct {
	From      string  `form:"from"` // RFC3339 or YYYY-MM-DD
	To        string  `form:"to"`   // RFC3339 or YYYY-MM-DD (whole day included)
	Type      string  `form:"type"`
	Category  string  `form:"category"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// CategoriesResponse lists the category palettes offered per transaction type.
type CategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		UserID:           t.UserID,
		Type:             t.Type,
		Category:         t.Category,
		Amount:           t.Amount,
		Description:      t.Description,
		Date:             t.Date,
		Tags:             tags,
		RecurringDetails: t.RecurringDetails,
		Attachments:      t.Attachments,
		Location:         t.Location,
		CreatedAt:        t.CreatedAt,
		LastUpdatedAt:    t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

const dateOnly = "2006-01-02"

// ParseDateRange parses optional from/to bounds. Date-only values cover the whole day
// (from at 00:00 UTC, to at the last instant of the day). Malformed values yield a
// ValidationError naming the field; a start after the end yields an invalid range error.
func ParseDateRange(from, to string) (domain.DateRange, error) {
	var rng domain.DateRange
	verr := apperrors.NewValidationError()

	if s := strings.TrimSpace(from); s != "" {
		t, _, err := parseTime(s)
		if err != nil {
			verr.Add("from", "must be an RFC3339 timestamp or YYYY-MM-DD date")
		} else {
			rng.From = &t
		}
	}
	if s := strings.TrimSpace(to); s != "" {
		t, dateOnlyValue, err := parseTime(s)
		if err != nil {
			verr.Add("to", "must be an RFC3339 timestamp or YYYY-MM-DD date")
		} else {
			if dateOnlyValue {
				t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}
			rng.To = &t
		}
	}
	if err := verr.OrNil(); err != nil {
		return domain.DateRange{}, err
	}
	if err := rng.Validate(); err != nil {
		return domain.DateRange{}, err
	}
	return rng, nil
}

func parseTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
