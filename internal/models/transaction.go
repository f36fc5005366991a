package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the stored row of a ledger entry.
// Nested values are kept as raw JSON (JSONB in Postgres, TEXT in SQLite).
type Transaction struct {
	TransactionID    string          `json:"transactionID"`
	UserID           string          `json:"userID"`
	Type             string          `json:"type"`
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Date             time.Time       `json:"date"`
	Tags             []byte          `json:"tags"`             // JSON array, never NULL
	RecurringDetails []byte          `json:"recurringDetails"` // Nullable
	Attachments      []byte          `json:"attachments"`      // JSON array, never NULL
	Location         []byte          `json:"location"`         // Nullable
	AuditFields
}
