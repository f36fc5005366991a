package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(typ TransactionType, category, amount string, date time.Time) Transaction {
	return Transaction{Type: typ, Category: category, Amount: d(amount), Date: date}
}

func TestComputeBalance(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	b := ComputeBalance([]Transaction{
		txn(Income, "salary", "1000", day),
		txn(Expense, "food", "400", day),
	})

	assert.True(t, b.Income.Equal(d("1000")))
	assert.True(t, b.Expense.Equal(d("400")))
	assert.True(t, b.Balance.Equal(d("600")))
}

func TestComputeBalance_Empty(t *testing.T) {
	b := ComputeBalance(nil)

	assert.True(t, b.Income.IsZero())
	assert.True(t, b.Expense.IsZero())
	assert.True(t, b.Balance.IsZero())
}

func TestComputeBalance_Additive(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	a := []Transaction{txn(Income, "salary", "1200.50", day), txn(Expense, "rent", "800", day)}
	b := []Transaction{txn(Expense, "food", "45.25", day), txn(Income, "gift", "20", day)}

	whole := ComputeBalance(append(append([]Transaction{}, a...), b...))
	left, right := ComputeBalance(a), ComputeBalance(b)

	assert.True(t, whole.Balance.Equal(left.Balance.Add(right.Balance)))
	assert.True(t, whole.Income.Equal(left.Income.Add(right.Income)))
	assert.True(t, whole.Expense.Equal(left.Expense.Add(right.Expense)))
}

func TestBuildMonthlyBreakdown(t *testing.T) {
	march := func(day int) time.Time { return time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC) }
	txns := []Transaction{
		txn(Expense, "food", "10", march(1)),
		txn(Income, "salary", "1000", march(2)),
		txn(Expense, "transport", "5", march(3)),
		txn(Expense, "food", "15", march(4)),
		txn(Expense, "food", "999", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		txn(Income, "salary", "999", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)),
	}

	b := BuildMonthlyBreakdown(2024, time.March, txns)

	assert.Equal(t, 2024, b.Year)
	assert.Equal(t, time.March, b.Month)
	require.Len(t, b.Types, 2)

	// Discovery order: expense seen first.
	expense := b.Types[0]
	assert.Equal(t, Expense, expense.Type)
	require.Len(t, expense.Categories, 2)
	assert.Equal(t, "food", expense.Categories[0].Category)
	assert.True(t, expense.Categories[0].Total.Equal(d("25")))
	assert.Equal(t, 2, expense.Categories[0].Count)
	assert.Equal(t, "transport", expense.Categories[1].Category)
	assert.True(t, expense.TotalAmount.Equal(d("30")))

	income := b.ForType(Income)
	require.NotNil(t, income)
	assert.True(t, income.TotalAmount.Equal(d("1000")))
	assert.Equal(t, 1, income.Categories[0].Count)
}

func TestBuildMonthlyBreakdown_ScenarioD(t *testing.T) {
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	b := BuildMonthlyBreakdown(2024, time.May, []Transaction{
		txn(Income, "salary", "1000", day),
		txn(Expense, "food", "400", day),
	})

	require.Len(t, b.Types, 2)
	assert.True(t, b.ForType(Income).Categories[0].Total.Equal(d("1000")))
	assert.True(t, b.ForType(Expense).Categories[0].Total.Equal(d("400")))
}

func TestBuildMonthlyBreakdown_EmptyMonth(t *testing.T) {
	b := BuildMonthlyBreakdown(2024, time.January, nil)

	assert.NotNil(t, b.Types)
	assert.Empty(t, b.Types)
	assert.Nil(t, b.ForType(Expense))
}

func TestSummarizeGoals(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	goals := []SavingsGoal{
		{TargetAmount: d("1000"), CurrentAmount: d("1000"), Deadline: now.AddDate(0, 0, -10), IsCompleted: true},
		{TargetAmount: d("1000"), CurrentAmount: d("200"), Deadline: now.AddDate(0, 0, -2)},
		{TargetAmount: d("1000"), CurrentAmount: d("500"), Deadline: now.AddDate(0, 0, 10)},
		{TargetAmount: d("1000"), CurrentAmount: d("300"), Deadline: now.AddDate(0, 3, 0)},
	}

	s := SummarizeGoals(goals, now)

	assert.Equal(t, 4, s.TotalGoals)
	assert.Equal(t, 1, s.CompletedGoals)
	assert.True(t, s.TotalTargetAmount.Equal(d("4000")))
	assert.True(t, s.TotalCurrentAmount.Equal(d("2000")))
	// The overdue goal counts as urgent too; completed goals count as neither.
	assert.Equal(t, 2, s.UrgentGoals)
	assert.Equal(t, 1, s.OverdueGoals)
	assert.True(t, s.OverallProgress.Equal(d("50")))

	// Per-goal labels keep overdue and urgent apart.
	assert.Equal(t, StatusOverdue, DeriveGoalProgress(&goals[1], now).Status)
	assert.Equal(t, StatusUrgent, DeriveGoalProgress(&goals[2], now).Status)
}

func TestSummarizeGoals_Empty(t *testing.T) {
	s := SummarizeGoals(nil, time.Now())

	assert.Zero(t, s.TotalGoals)
	assert.True(t, s.OverallProgress.IsZero())
	assert.True(t, s.TotalTargetAmount.IsZero())
}
