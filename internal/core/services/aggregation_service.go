package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// aggregationService merges the ledger and goal views. It keeps no state.
type aggregationService struct {
	BaseService
	ledger portssvc.LedgerCalculatorSvc
	goals  interface {
		portssvc.GoalReaderSvc
		portssvc.GoalCalculatorSvc
	}
}

// AggregationServiceOption is a functional option for configuring the aggregation service
type AggregationServiceOption func(*aggregationService)

// WithAggregationClock overrides the wall clock used to pick the current month.
func WithAggregationClock(clock func() time.Time) AggregationServiceOption {
	return func(s *aggregationService) {
		s.Clock = clock
	}
}

// NewAggregationService creates the aggregation service on top of the two stores.
func NewAggregationService(ledger portssvc.LedgerCalculatorSvc, goals portssvc.GoalSvcFacade, options ...AggregationServiceOption) portssvc.AggregationService {
	svc := &aggregationService{ledger: ledger, goals: goals}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AggregationService = (*aggregationService)(nil)

func (s *aggregationService) BalanceFor(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Balance, error) {
	return s.ledger.BalanceFor(ctx, userID, dateRange)
}

func (s *aggregationService) MonthlyBreakdown(ctx context.Context, userID string, year int, month int) (domain.MonthlyBreakdown, error) {
	return s.ledger.MonthlyBreakdown(ctx, userID, year, month)
}

func (s *aggregationService) GoalsSummary(ctx context.Context, userID string) (domain.GoalsSummary, error) {
	return s.goals.GoalsSummary(ctx, userID)
}

// DashboardSummary reads the ledger and the goals concurrently. The goals summary is
// computed from the same goal list that is returned so the two always agree.
func (s *aggregationService) DashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	now := s.Now()
	summary := &domain.DashboardSummary{AsOf: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		balance, err := s.ledger.BalanceFor(gctx, userID, domain.DateRange{})
		if err != nil {
			return err
		}
		summary.Balance = balance
		return nil
	})
	g.Go(func() error {
		breakdown, err := s.ledger.MonthlyBreakdown(gctx, userID, now.Year(), int(now.Month()))
		if err != nil {
			return err
		}
		summary.CurrentMonth = breakdown
		return nil
	})
	g.Go(func() error {
		goals, err := s.goals.ListGoals(gctx, userID)
		if err != nil {
			return err
		}
		summary.GoalList = goals
		stored := make([]domain.SavingsGoal, len(goals))
		for i := range goals {
			stored[i] = goals[i].Goal
		}
		summary.Goals = domain.SummarizeGoals(stored, now)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build dashboard summary")
		return nil, err
	}

	s.LogDebug(ctx, "Dashboard summary built",
		slog.Int("goals", summary.Goals.TotalGoals),
		slog.String("balance", summary.Balance.Balance.String()))
	return summary, nil
}
