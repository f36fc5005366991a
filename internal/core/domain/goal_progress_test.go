package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    string
	}{
		{"NoProgress", "0", "1000", "0"},
		{"Quarter", "250", "1000", "25"},
		{"Exact", "1000", "1000", "100"},
		{"CappedAtHundred", "1500", "1000", "100"},
		{"ZeroTarget", "10", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercentage(d(tt.current), d(tt.target))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysRemaining(now.AddDate(0, 0, 10), now))
	assert.Equal(t, 2, DaysRemaining(now.Add(36*time.Hour), now), "partial days round up")
	assert.Equal(t, 0, DaysRemaining(now.Add(-12*time.Hour), now))
	assert.Equal(t, -1, DaysRemaining(now.Add(-36*time.Hour), now))
	assert.Equal(t, 0, DaysRemaining(now, now))
}

func TestDeriveGoalProgress(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	g := &SavingsGoal{
		TargetAmount:  d("1000"),
		CurrentAmount: d("400"),
		Deadline:      now.AddDate(0, 0, 60),
	}

	p := DeriveGoalProgress(g, now)

	assert.True(t, p.ProgressPercentage.Equal(d("40")))
	assert.True(t, p.RemainingAmount.Equal(d("600")))
	assert.Equal(t, 60, p.DaysRemaining)
	assert.True(t, p.MonthlySavingsNeeded.Equal(d("300")), "600 over two months")
	assert.Equal(t, StatusInProgress, p.Status)
}

func TestDeriveGoalProgress_MonthlyAmountRounded(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	g := &SavingsGoal{TargetAmount: d("100"), CurrentAmount: d("0"), Deadline: now.AddDate(0, 0, 7)}

	p := DeriveGoalProgress(g, now)

	assert.True(t, p.MonthlySavingsNeeded.Equal(d("428.57")), "got %s", p.MonthlySavingsNeeded)
}

func TestDeriveGoalProgress_PastDeadlineAndOverfunded(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	overdue := &SavingsGoal{TargetAmount: d("100"), CurrentAmount: d("10"), Deadline: now.AddDate(0, 0, -3)}
	p := DeriveGoalProgress(overdue, now)
	assert.Equal(t, -3, p.DaysRemaining)
	assert.True(t, p.MonthlySavingsNeeded.IsZero())
	assert.Equal(t, StatusOverdue, p.Status)

	over := &SavingsGoal{TargetAmount: d("100"), CurrentAmount: d("130"), Deadline: now.AddDate(0, 1, 0), IsCompleted: true}
	p = DeriveGoalProgress(over, now)
	assert.True(t, p.RemainingAmount.IsZero(), "remaining never goes negative")
	assert.True(t, p.ProgressPercentage.Equal(d("100")))
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestGoalStatusPrecedence(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		current   string
		days      int
		completed bool
		want      GoalStatus
	}{
		{"CompletedWinsOverOverdue", "100", -5, true, StatusCompleted},
		{"Overdue", "10", -1, false, StatusOverdue},
		{"UrgentDespiteLowProgress", "40", 10, false, StatusUrgent},
		{"UrgentBeatsOnTrack", "90", 30, false, StatusUrgent},
		{"OnTrack", "75", 31, false, StatusOnTrack},
		{"InProgress", "74", 90, false, StatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &SavingsGoal{
				TargetAmount:  d("100"),
				CurrentAmount: d(tt.current),
				Deadline:      now.AddDate(0, 0, tt.days),
				IsCompleted:   tt.completed,
			}
			assert.Equal(t, tt.want, DeriveGoalProgress(g, now).Status)
		})
	}
}

func TestWithProgress(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	goals := []SavingsGoal{
		{GoalID: "a", TargetAmount: d("100"), CurrentAmount: d("50"), Deadline: now.AddDate(1, 0, 0)},
		{GoalID: "b", TargetAmount: d("100"), CurrentAmount: d("0"), Deadline: now.AddDate(0, 0, 5)},
	}

	out := WithProgress(goals, now)

	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Goal.GoalID)
	assert.True(t, out[0].Progress.ProgressPercentage.Equal(d("50")))
	assert.Equal(t, StatusUrgent, out[1].Progress.Status)
	assert.Empty(t, WithProgress(nil, now))
}
