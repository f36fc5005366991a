package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalCategory classifies what a savings goal is for.
type GoalCategory string

const (
	GoalEmergency  GoalCategory = "emergency"
	GoalVacation   GoalCategory = "vacation"
	GoalEducation  GoalCategory = "education"
	GoalHome       GoalCategory = "home"
	GoalCar        GoalCategory = "car"
	GoalInvestment GoalCategory = "investment"
	GoalOther      GoalCategory = "other"
)

// GoalPriority ranks goals for the user.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// SaveFrequency is the cadence of an auto-save schedule.
type SaveFrequency string

const (
	SaveDaily   SaveFrequency = "daily"
	SaveWeekly  SaveFrequency = "weekly"
	SaveMonthly SaveFrequency = "monthly"
)

// ContributionSource records where a contribution came from.
type ContributionSource string

const (
	SourceManual   ContributionSource = "manual"
	SourceAutoSave ContributionSource = "auto-save"
	SourceBonus    ContributionSource = "bonus"
	SourceGift     ContributionSource = "gift"
)

// IsValid reports whether s is a known contribution source.
func (s ContributionSource) IsValid() bool {
	switch s {
	case SourceManual, SourceAutoSave, SourceBonus, SourceGift:
		return true
	}
	return false
}

// AutoSave is an advisory recurring-contribution schedule. No scheduler runs it.
type AutoSave struct {
	Enabled      bool            `json:"enabled"`
	Amount       decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`                         // Required when enabled
	Frequency    SaveFrequency   `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"` // Required when enabled
	NextSaveDate *time.Time      `json:"nextSaveDate,omitempty"`
}

// Milestone marks the first time a goal reached a progress threshold.
type Milestone struct {
	Percentage int             `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	AchievedAt time.Time       `json:"achievedAt"`
	Note       string          `json:"note"`
}

// Contribution is an append-only deposit toward a goal.
type Contribution struct {
	Amount decimal.Decimal    `json:"amount"`
	Date   time.Time          `json:"date"`
	Note   string             `json:"note"`
	Source ContributionSource `json:"source"`
}

// SavingsGoal is a target amount the user saves toward before a deadline.
// Contributions and milestones are embedded: they are always read and written with the goal.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"`
	UserID        string          `json:"userID" validate:"required"`
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description" validate:"max=500"`
	TargetAmount  decimal.Decimal `json:"targetAmount" validate:"gt=0"`
	CurrentAmount decimal.Decimal `json:"currentAmount" validate:"gte=0"`
	Deadline      time.Time       `json:"deadline" validate:"required"`
	Category      GoalCategory    `json:"category" validate:"required,oneof=emergency vacation education home car investment other"`
	Priority      GoalPriority    `json:"priority" validate:"required,oneof=low medium high"`
	IsCompleted   bool            `json:"isCompleted"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	AutoSave      *AutoSave       `json:"autoSave,omitempty"`
	Milestones    []Milestone     `json:"milestones"`
	Contributions []Contribution  `json:"contributions"`
	AuditFields
}

// ContributionTotal sums every recorded contribution.
func (g *SavingsGoal) ContributionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range g.Contributions {
		total = total.Add(c.Amount)
	}
	return total
}

// HasMilestone reports whether a milestone for the exact threshold exists.
func (g *SavingsGoal) HasMilestone(percentage int) bool {
	for _, m := range g.Milestones {
		if m.Percentage == percentage {
			return true
		}
	}
	return false
}
