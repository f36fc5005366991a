package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
	"github.com/SscSPs/empower_finance_app/internal/utils/mapping"
)

type GoalRepository struct {
	store *Store
}

var _ portsrepo.GoalRepositoryFacade = (*GoalRepository)(nil)

func (r *GoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m, err := mapping.ToModelSavingsGoal(goal)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode goal "+goal.GoalID, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.goals[m.GoalID]; exists {
		return apperrors.NewConflictError("goal " + m.GoalID + " already exists")
	}
	r.store.goals[m.GoalID] = m
	return nil
}

func (r *GoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	r.store.mu.RLock()
	m, ok := r.store.goals[goalID]
	r.store.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("goal " + goalID + " not found")
	}

	goal, err := mapping.ToDomainSavingsGoal(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode goal "+goalID, err)
	}
	return &goal, nil
}

func (r *GoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	r.store.mu.RLock()
	owned := make([]models.SavingsGoal, 0)
	for _, m := range r.store.goals {
		if m.UserID == userID {
			owned = append(owned, m)
		}
	}
	r.store.mu.RUnlock()

	slices.SortFunc(owned, func(a, b models.SavingsGoal) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.GoalID, a.GoalID)
	})

	goals, err := mapping.ToDomainSavingsGoalSlice(owned)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode goals for user "+userID, err)
	}
	return goals, nil
}

// UpdateGoal swaps the whole document under the lock, so a contribution and its
// milestones can never be stored apart.
func (r *GoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m, err := mapping.ToModelSavingsGoal(goal)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode goal "+goal.GoalID, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.goals[m.GoalID]
	if !ok {
		return apperrors.NewNotFoundError("goal " + m.GoalID + " not found")
	}
	if current.Version != m.Version {
		return apperrors.NewConflictError("goal " + m.GoalID + " was modified concurrently")
	}

	m.UserID = current.UserID
	m.CreatedAt = current.CreatedAt
	m.CreatedBy = current.CreatedBy
	m.Version = current.Version + 1
	r.store.goals[m.GoalID] = m
	return nil
}

func (r *GoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.goals[goalID]; !ok {
		return apperrors.NewNotFoundError("goal " + goalID + " not found")
	}
	delete(r.store.goals, goalID)
	return nil
}
