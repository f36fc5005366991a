package services

import (
	"context"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/dto"
)

// GoalReaderSvc defines read operations for savings goals.
// Returned goals carry derived fields computed at call time.
type GoalReaderSvc interface {
	GetGoal(ctx context.Context, userID string, goalID string) (*domain.GoalWithProgress, error)
	ListGoals(ctx context.Context, userID string) ([]domain.GoalWithProgress, error)
}

// GoalWriterSvc defines the goal state machine transitions
type GoalWriterSvc interface {
	// CreateGoal opens an active goal with no contributions.
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.GoalWithProgress, error)

	// UpdateGoal edits the non-derived fields and reconciles completion.
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.GoalWithProgress, error)

	// DeleteGoal removes a goal. Transactions are not affected.
	DeleteGoal(ctx context.Context, userID string, goalID string) error

	// AddContribution deposits toward a goal, records newly reached milestones and
	// reconciles completion. It returns the milestones reached by this contribution.
	AddContribution(ctx context.Context, userID string, goalID string, req dto.AddContributionRequest) (*domain.GoalWithProgress, []domain.Milestone, error)
}

// GoalCalculatorSvc defines the goal aggregations
type GoalCalculatorSvc interface {
	GoalsSummary(ctx context.Context, userID string) (domain.GoalsSummary, error)
}

// GoalSvcFacade combines all goal-related service interfaces
type GoalSvcFacade interface {
	GoalReaderSvc
	GoalWriterSvc
	GoalCalculatorSvc
}
