package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the income/expense position over a set of transactions.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryTotal aggregates the transactions of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TypeBreakdown groups category totals under one transaction type.
type TypeBreakdown struct {
	Type        TransactionType `json:"type"`
	Categories  []CategoryTotal `json:"categories"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// MonthlyBreakdown is the per-type, per-category view of one calendar month.
// Types and categories appear in discovery order; callers needing a stable order sort.
type MonthlyBreakdown struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Types []TypeBreakdown `json:"types"`
}

// GoalsSummary aggregates all goals of a user.
// UrgentGoals includes overdue goals; the per-goal Status keeps the two apart.
type GoalsSummary struct {
	TotalGoals         int             `json:"totalGoals"`
	CompletedGoals     int             `json:"completedGoals"`
	TotalTargetAmount  decimal.Decimal `json:"totalTargetAmount"`
	TotalCurrentAmount decimal.Decimal `json:"totalCurrentAmount"`
	UrgentGoals        int             `json:"urgentGoals"`
	OverdueGoals       int             `json:"overdueGoals"`
	OverallProgress    decimal.Decimal `json:"overallProgress"`
}

// ComputeBalance sums income and expense amounts. No transactions yields zeros.
func ComputeBalance(txns []Transaction) Balance {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case Income:
			income = income.Add(t.Amount)
		case Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return Balance{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// BuildMonthlyBreakdown groups the transactions dated in (year, month) UTC first by
// (type, category), then by type.
func BuildMonthlyBreakdown(year int, month time.Month, txns []Transaction) MonthlyBreakdown {
	type groupKey struct {
		typ      TransactionType
		category string
	}

	var typeOrder []TransactionType
	categoryOrder := make(map[TransactionType][]string)
	groups := make(map[groupKey]*CategoryTotal)

	for _, t := range txns {
		d := t.Date.UTC()
		if d.Year() != year || d.Month() != month {
			continue
		}
		key := groupKey{typ: t.Type, category: t.Category}
		g, ok := groups[key]
		if !ok {
			if _, seen := categoryOrder[t.Type]; !seen {
				typeOrder = append(typeOrder, t.Type)
			}
			categoryOrder[t.Type] = append(categoryOrder[t.Type], t.Category)
			g = &CategoryTotal{Category: t.Category, Total: decimal.Zero}
			groups[key] = g
		}
		g.Total = g.Total.Add(t.Amount)
		g.Count++
	}

	out := MonthlyBreakdown{Year: year, Month: month, Types: make([]TypeBreakdown, 0, len(typeOrder))}
	for _, typ := range typeOrder {
		tb := TypeBreakdown{Type: typ, TotalAmount: decimal.Zero}
		for _, category := range categoryOrder[typ] {
			g := groups[groupKey{typ: typ, category: category}]
			tb.Categories = append(tb.Categories, *g)
			tb.TotalAmount = tb.TotalAmount.Add(g.Total)
		}
		out.Types = append(out.Types, tb)
	}
	return out
}

// ForType returns the breakdown of one type, or nil when the month has none.
func (b MonthlyBreakdown) ForType(t TransactionType) *TypeBreakdown {
	for i := range b.Types {
		if b.Types[i].Type == t {
			return &b.Types[i]
		}
	}
	return nil
}

// SummarizeGoals computes the goals portion of the finance summary as of now.
func SummarizeGoals(goals []SavingsGoal, now time.Time) GoalsSummary {
	s := GoalsSummary{
		TotalGoals:         len(goals),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
		OverallProgress:    decimal.Zero,
	}
	for i := range goals {
		g := &goals[i]
		s.TotalTargetAmount = s.TotalTargetAmount.Add(g.TargetAmount)
		s.TotalCurrentAmount = s.TotalCurrentAmount.Add(g.CurrentAmount)
		if g.IsCompleted {
			s.CompletedGoals++
			continue
		}
		days := DaysRemaining(g.Deadline, now)
		if days <= urgentWindowDays {
			s.UrgentGoals++
		}
		if days < 0 {
			s.OverdueGoals++
		}
	}
	if s.TotalTargetAmount.IsPositive() {
		s.OverallProgress = s.TotalCurrentAmount.Div(s.TotalTargetAmount).Mul(hundred)
	}
	return s
}

// DashboardSummary merges the ledger and goal summaries for one user.
type DashboardSummary struct {
	AsOf         time.Time
	Balance      Balance
	CurrentMonth MonthlyBreakdown
	Goals        GoalsSummary
	GoalList     []GoalWithProgress
}
