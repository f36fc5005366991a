package dto

import (
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceQuery holds the optional window for a balance request.
type BalanceQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// MonthlySummaryQuery selects the calendar month of a breakdown.
type MonthlySummaryQuery struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

// BalanceResponse is the income/expense position of a user.
type BalanceResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryTotalResponse is one category line of a monthly breakdown.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TypeBreakdownResponse groups the category lines of one transaction type.
type TypeBreakdownResponse struct {
	Type        domain.TransactionType  `json:"type"`
	Categories  []CategoryTotalResponse `json:"categories"`
	TotalAmount decimal.Decimal         `json:"totalAmount"`
}

// MonthlyBreakdownResponse is the per-type, per-category view of one month.
type MonthlyBreakdownResponse struct {
	Year  int                     `json:"year"`
	Month int                     `json:"month"`
	Types []TypeBreakdownResponse `json:"types"`
}

// GoalsSummaryResponse aggregates the goals of a user.
type GoalsSummaryResponse struct {
	TotalGoals         int             `json:"totalGoals"`
	CompletedGoals     int             `json:"completedGoals"`
	TotalTargetAmount  decimal.Decimal `json:"totalTargetAmount"`
	TotalCurrentAmount decimal.Decimal `json:"totalCurrentAmount"`
	UrgentGoals        int             `json:"urgentGoals"`
	OverdueGoals       int             `json:"overdueGoals"`
	OverallProgress    decimal.Decimal `json:"overallProgress"`
}

// DashboardResponse merges balance, goals and the current month.
type DashboardResponse struct {
	AsOf         time.Time                `json:"asOf"`
	Balance      BalanceResponse          `json:"balance"`
	Goals        GoalsSummaryResponse     `json:"goals"`
	CurrentMonth MonthlyBreakdownResponse `json:"currentMonth"`
	GoalList     []GoalResponse           `json:"goalList"`
}

// ToBalanceResponse converts a domain.Balance.
func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{Income: b.Income, Expense: b.Expense, Balance: b.Balance}
}

// ToMonthlyBreakdownResponse converts a domain.MonthlyBreakdown, keeping discovery order.
func ToMonthlyBreakdownResponse(b domain.MonthlyBreakdown) MonthlyBreakdownResponse {
	resp := MonthlyBreakdownResponse{
		Year:  b.Year,
		Month: int(b.Month),
		Types: make([]TypeBreakdownResponse, len(b.Types)),
	}
	for i, tb := range b.Types {
		cats := make([]CategoryTotalResponse, len(tb.Categories))
		for j, c := range tb.Categories {
			cats[j] = CategoryTotalResponse{Category: c.Category, Total: c.Total, Count: c.Count}
		}
		resp.Types[i] = TypeBreakdownResponse{Type: tb.Type, Categories: cats, TotalAmount: tb.TotalAmount}
	}
	return resp
}

// ToGoalsSummaryResponse converts a domain.GoalsSummary.
func ToGoalsSummaryResponse(s domain.GoalsSummary) GoalsSummaryResponse {
	return GoalsSummaryResponse{
		TotalGoals:         s.TotalGoals,
		CompletedGoals:     s.CompletedGoals,
		TotalTargetAmount:  s.TotalTargetAmount,
		TotalCurrentAmount: s.TotalCurrentAmount,
		UrgentGoals:        s.UrgentGoals,
		OverdueGoals:       s.OverdueGoals,
		OverallProgress:    s.OverallProgress,
	}
}

// ToDashboardResponse converts a domain.DashboardSummary.
func ToDashboardResponse(d domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		AsOf:         d.AsOf,
		Balance:      ToBalanceResponse(d.Balance),
		Goals:        ToGoalsSummaryResponse(d.Goals),
		CurrentMonth: ToMonthlyBreakdownResponse(d.CurrentMonth),
		GoalList:     ToGoalResponses(d.GoalList),
	}
}
