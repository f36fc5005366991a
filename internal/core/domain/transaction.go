package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or subtracts from the balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// RecurrenceFrequency is how often a recurring transaction repeats.
type RecurrenceFrequency string

const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
	RecurYearly  RecurrenceFrequency = "yearly"
)

// RecurringDetails describes an advisory repetition schedule. Nothing executes it.
type RecurringDetails struct {
	Frequency RecurrenceFrequency `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	NextDate  *time.Time          `json:"nextDate,omitempty"`
	EndDate   *time.Time          `json:"endDate,omitempty"`
}

// Attachment references an uploaded receipt or document.
type Attachment struct {
	Filename string `json:"filename" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url"`
}

// Location is where a transaction happened.
type Location struct {
	Name      string  `json:"name" validate:"max=200"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Transaction is a single income or expense record, the unit of raw financial fact.
type Transaction struct {
	TransactionID    string            `json:"transactionID"`
	UserID           string            `json:"userID" validate:"required"`
	Type             TransactionType   `json:"type" validate:"required,oneof=income expense"`
	Category         string            `json:"category" validate:"required,max=100"`
	Amount           decimal.Decimal   `json:"amount" validate:"gt=0"` // Always positive; the sign comes from Type
	Description      string            `json:"description" validate:"max=200"`
	Date             time.Time         `json:"date" validate:"required"`
	Tags             []string          `json:"tags" validate:"dive,required,max=50"`
	RecurringDetails *RecurringDetails `json:"recurringDetails,omitempty"`
	Attachments      []Attachment      `json:"attachments,omitempty" validate:"dive"`
	Location         *Location         `json:"location,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with the sign of its balance effect.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NormalizeTags trims, drops empty entries and de-duplicates while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// IncomeCategories is the palette offered to clients for income entries.
var IncomeCategories = []string{"salary", "freelance", "investment", "business", "gift", "other"}

// ExpenseCategories is the palette offered to clients for expense entries.
var ExpenseCategories = []string{"food", "transport", "housing", "utilities", "healthcare", "entertainment", "shopping", "education", "savings", "other"}

// TransactionFilter narrows a transaction listing. Nil fields are ignored.
type TransactionFilter struct {
	Type     *TransactionType
	Category *string
	Range    DateRange
}
