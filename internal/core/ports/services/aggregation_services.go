package services

import (
	"context"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
)

// AggregationService merges ledger and goal views. It holds no state and caches nothing.
type AggregationService interface {
	LedgerCalculatorSvc
	GoalCalculatorSvc

	// DashboardSummary combines the overall balance, the goals summary, the current
	// month breakdown and the goal list.
	DashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}
