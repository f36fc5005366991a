package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MilestoneThresholds are the progress percentages that earn a milestone, in check order.
var MilestoneThresholds = []int{25, 50, 75, 100}

// ApplyContribution appends the contribution, raises the current amount, records any
// newly crossed milestones and reconciles completion. It returns the new milestones.
// Callers must persist the whole goal afterwards as one write.
func (g *SavingsGoal) ApplyContribution(c Contribution, now time.Time) []Milestone {
	if c.Source == "" {
		c.Source = SourceManual
	}
	c.Date = now
	g.Contributions = append(g.Contributions, c)
	g.CurrentAmount = g.CurrentAmount.Add(c.Amount)

	reached := g.RecordMilestones(now)
	g.ReconcileCompletion(now)
	return reached
}

// RecordMilestones appends a milestone for every threshold the current progress has
// reached that is not yet recorded. Existing milestones are never removed, so calling
// it repeatedly is idempotent per threshold.
func (g *SavingsGoal) RecordMilestones(now time.Time) []Milestone {
	progress := ProgressPercentage(g.CurrentAmount, g.TargetAmount)

	var reached []Milestone
	for _, threshold := range MilestoneThresholds {
		if g.HasMilestone(threshold) {
			continue
		}
		if progress.LessThan(decimal.NewFromInt(int64(threshold))) {
			continue
		}
		m := Milestone{
			Percentage: threshold,
			Amount:     g.TargetAmount.Mul(decimal.NewFromInt(int64(threshold))).Div(hundred),
			AchievedAt: now,
			Note:       fmt.Sprintf("%d%% milestone achieved!", threshold),
		}
		g.Milestones = append(g.Milestones, m)
		reached = append(reached, m)
	}
	return reached
}

// ReconcileCompletion enforces isCompleted <=> currentAmount >= targetAmount in both
// directions. completedAt is kept when the goal stays completed and cleared when it
// falls back to active. It reports whether the completion flag changed.
func (g *SavingsGoal) ReconcileCompletion(now time.Time) bool {
	shouldComplete := g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
	changed := shouldComplete != g.IsCompleted

	g.IsCompleted = shouldComplete
	if shouldComplete {
		if g.CompletedAt == nil {
			completedAt := now
			g.CompletedAt = &completedAt
		}
	} else {
		g.CompletedAt = nil
	}
	return changed
}
