package repositories

import (
	"context"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
)

// GoalReader defines read operations for savings goals
type GoalReader interface {
	// FindGoalByID retrieves a goal document including contributions and milestones.
	FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error)

	// ListGoalsByUser retrieves all goals of a user, newest first.
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
}

// GoalWriter defines write operations for savings goals
type GoalWriter interface {
	// SaveGoal inserts a new goal document.
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error

	// UpdateGoal replaces the whole goal document in one write, only if the stored
	// version still equals goal.Version, and increments the stored version.
	// It returns an error matching apperrors.ErrConflict when the version moved and
	// apperrors.ErrNotFound when the goal no longer exists.
	UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error

	// DeleteGoal removes a goal document.
	DeleteGoal(ctx context.Context, goalID string) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
