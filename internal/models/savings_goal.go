package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is the stored goal document. Contributions and milestones are
// embedded JSON arrays so the whole goal is written in one statement.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	Category      string          `json:"category"`
	Priority      string          `json:"priority"`
	IsCompleted   bool            `json:"isCompleted"`
	CompletedAt   *time.Time      `json:"completedAt"`
	AutoSave      []byte          `json:"autoSave"` // Nullable
	Milestones    []byte          `json:"milestones"`
	Contributions []byte          `json:"contributions"`
	AuditFields
}
