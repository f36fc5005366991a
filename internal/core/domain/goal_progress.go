package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus is the read-time label of a goal. It is never stored.
type GoalStatus string

const (
	StatusCompleted  GoalStatus = "completed"
	StatusOverdue    GoalStatus = "overdue"
	StatusUrgent     GoalStatus = "urgent"
	StatusOnTrack    GoalStatus = "on-track"
	StatusInProgress GoalStatus = "in-progress"
)

const (
	urgentWindowDays = 30
	onTrackPercent   = 75
	daysPerMonth     = 30
)

var hundred = decimal.NewFromInt(100)

// GoalProgress holds the fields derived from a goal's stored amounts and deadline.
type GoalProgress struct {
	ProgressPercentage   decimal.Decimal `json:"progressPercentage"`
	RemainingAmount      decimal.Decimal `json:"remainingAmount"`
	DaysRemaining        int             `json:"daysRemaining"`
	MonthlySavingsNeeded decimal.Decimal `json:"monthlySavingsNeeded"`
	Status               GoalStatus      `json:"status"`
}

// ProgressPercentage is min(current / target * 100, 100). A non-positive target yields 0.
func ProgressPercentage(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	pct := current.Div(target).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

// DaysRemaining is ceil((deadline - now) / 1 day) and may be negative.
func DaysRemaining(deadline, now time.Time) int {
	days := deadline.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

// DeriveGoalProgress computes every derived goal field as of now.
func DeriveGoalProgress(g *SavingsGoal, now time.Time) GoalProgress {
	progress := ProgressPercentage(g.CurrentAmount, g.TargetAmount)

	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	days := DaysRemaining(g.Deadline, now)

	monthly := decimal.Zero
	if days > 0 {
		monthly = remaining.Mul(decimal.NewFromInt(daysPerMonth)).Div(decimal.NewFromInt(int64(days))).Round(2)
	}

	return GoalProgress{
		ProgressPercentage:   progress,
		RemainingAmount:      remaining,
		DaysRemaining:        days,
		MonthlySavingsNeeded: monthly,
		Status:               goalStatus(g.IsCompleted, days, progress),
	}
}

// goalStatus applies the labels in precedence order; overdue and urgent never overlap here.
func goalStatus(completed bool, days int, progress decimal.Decimal) GoalStatus {
	switch {
	case completed:
		return StatusCompleted
	case days < 0:
		return StatusOverdue
	case days <= urgentWindowDays:
		return StatusUrgent
	case progress.GreaterThanOrEqual(decimal.NewFromInt(onTrackPercent)):
		return StatusOnTrack
	default:
		return StatusInProgress
	}
}

// GoalWithProgress pairs a stored goal with its freshly derived fields.
type GoalWithProgress struct {
	Goal     SavingsGoal
	Progress GoalProgress
}

// WithProgress derives the read-only fields of every goal as of now.
func WithProgress(goals []SavingsGoal, now time.Time) []GoalWithProgress {
	out := make([]GoalWithProgress, len(goals))
	for i := range goals {
		out[i] = GoalWithProgress{Goal: goals[i], Progress: DeriveGoalProgress(&goals[i], now)}
	}
	return out
}
