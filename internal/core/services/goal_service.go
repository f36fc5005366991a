package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/core/validation"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultGoalWriteRetries is how many extra read-modify-write attempts a goal
// mutation gets after losing a version race.
const DefaultGoalWriteRetries = 3

// DefaultGoalRetryBackoff is the base wait before the first retry. Attempt n waits a
// random duration in [0, n*base).
const DefaultGoalRetryBackoff = 5 * time.Millisecond

// maxContributionNote is counted in characters, like the validator's max tag.
const maxContributionNote = 200

var minGoalTarget = decimal.NewFromInt(1)

// goalService implements the GoalSvcFacade interface and owns the goal state machine.
type goalService struct {
	BaseService
	goalRepo     portsrepo.GoalRepositoryFacade
	maxRetries   int
	retryBackoff time.Duration
}

// GoalServiceOption is a functional option for configuring the goal service
type GoalServiceOption func(*goalService)

// WithGoalEvents publishes an event after every successful goal write.
func WithGoalEvents(publisher ports.EventPublisher) GoalServiceOption {
	return func(s *goalService) {
		s.Events = publisher
	}
}

// WithGoalClock overrides the wall clock, mainly for tests.
func WithGoalClock(clock func() time.Time) GoalServiceOption {
	return func(s *goalService) {
		s.Clock = clock
	}
}

// WithGoalWriteRetries sets the number of retries after a version conflict. Negative values are ignored.
func WithGoalWriteRetries(retries int) GoalServiceOption {
	return func(s *goalService) {
		if retries >= 0 {
			s.maxRetries = retries
		}
	}
}

// WithGoalRetryBackoff sets the base wait between conflict retries. Zero retries
// immediately; negative values are ignored.
func WithGoalRetryBackoff(base time.Duration) GoalServiceOption {
	return func(s *goalService) {
		if base >= 0 {
			s.retryBackoff = base
		}
	}
}

// NewGoalService creates a new goal service with the provided options
func NewGoalService(repo portsrepo.GoalRepositoryFacade, options ...GoalServiceOption) portssvc.GoalSvcFacade {
	svc := &goalService{goalRepo: repo, maxRetries: DefaultGoalWriteRetries, retryBackoff: DefaultGoalRetryBackoff}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.GoalWithProgress, error) {
	now := s.Now()

	category := req.Category
	if category == "" {
		category = domain.GoalOther
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	goal := domain.SavingsGoal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      req.Deadline.UTC(),
		Category:      category,
		Priority:      priority,
		AutoSave:      req.AutoSave,
		Milestones:    []domain.Milestone{},
		Contributions: []domain.Contribution{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}

	verr := validateGoal(&goal)
	if goal.TargetAmount.IsPositive() && goal.TargetAmount.LessThan(minGoalTarget) {
		verr.Add("targetAmount", "must be at least 1")
	}
	if !goal.Deadline.IsZero() && !goal.Deadline.After(now) {
		verr.Add("deadline", "must be in the future")
	}
	if err := verr.OrNil(); err != nil {
		s.LogDebug(ctx, "Goal failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("goal_id", goal.GoalID))
		return nil, err
	}

	s.LogInfo(ctx, "Goal created successfully", slog.String("goal_id", goal.GoalID))
	s.Publish(ctx, ports.Event{Type: ports.GoalCreated, UserID: userID, ResourceID: goal.GoalID})
	return &domain.GoalWithProgress{Goal: goal, Progress: domain.DeriveGoalProgress(&goal, now)}, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID string, goalID string) (*domain.GoalWithProgress, error) {
	goal, err := s.loadOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	return &domain.GoalWithProgress{Goal: *goal, Progress: domain.DeriveGoalProgress(goal, s.Now())}, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.GoalWithProgress, error) {
	goals, err := s.listGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.WithProgress(goals, s.Now()), nil
}

func (s *goalService) GoalsSummary(ctx context.Context, userID string) (domain.GoalsSummary, error) {
	goals, err := s.listGoals(ctx, userID)
	if err != nil {
		return domain.GoalsSummary{}, err
	}
	return domain.SummarizeGoals(goals, s.Now()), nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.GoalWithProgress, error) {
	if isEmptyGoalUpdate(req) {
		s.LogDebug(ctx, "No fields provided for goal update", slog.String("goal_id", goalID))
		return s.GetGoal(ctx, userID, goalID)
	}

	goal, err := s.mutateGoal(ctx, userID, goalID, func(g *domain.SavingsGoal, now time.Time) error {
		deadlineChanged := false
		if req.Name != nil {
			g.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			g.Description = *req.Description
		}
		if req.TargetAmount != nil {
			g.TargetAmount = *req.TargetAmount
		}
		if req.Deadline != nil {
			deadlineChanged = !req.Deadline.Equal(g.Deadline)
			g.Deadline = req.Deadline.UTC()
		}
		if req.Category != nil {
			g.Category = *req.Category
		}
		if req.Priority != nil {
			g.Priority = *req.Priority
		}
		if req.AutoSave != nil {
			g.AutoSave = req.AutoSave
		}

		verr := validateGoal(g)
		if deadlineChanged && !g.Deadline.After(now) {
			verr.Add("deadline", "must be in the future")
		}
		if err := verr.OrNil(); err != nil {
			return err
		}

		// A target edit can cross the completion boundary in either direction.
		g.ReconcileCompletion(now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Goal updated successfully", slog.String("goal_id", goalID))
	s.Publish(ctx, ports.Event{Type: ports.GoalUpdated, UserID: userID, ResourceID: goalID, Completed: goal.IsCompleted})
	return &domain.GoalWithProgress{Goal: *goal, Progress: domain.DeriveGoalProgress(goal, s.Now())}, nil
}

func (s *goalService) AddContribution(ctx context.Context, userID string, goalID string, req dto.AddContributionRequest) (*domain.GoalWithProgress, []domain.Milestone, error) {
	verr := apperrors.NewValidationError()
	if !req.Amount.IsPositive() {
		verr.Add("amount", "must be greater than 0")
	}
	if req.Source != "" && !req.Source.IsValid() {
		verr.Add("source", "must be one of: manual, auto-save, bonus, gift")
	}
	if utf8.RuneCountInString(req.Note) > maxContributionNote {
		verr.Add("note", "must be at most 200 characters")
	}
	if err := verr.OrNil(); err != nil {
		return nil, nil, err
	}

	var reached []domain.Milestone
	goal, err := s.mutateGoal(ctx, userID, goalID, func(g *domain.SavingsGoal, now time.Time) error {
		reached = g.ApplyContribution(domain.Contribution{
			Amount: req.Amount,
			Note:   req.Note,
			Source: req.Source,
		}, now)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if reached == nil {
		reached = []domain.Milestone{}
	}

	thresholds := make([]int, len(reached))
	for i, m := range reached {
		thresholds[i] = m.Percentage
	}
	s.LogInfo(ctx, "Contribution added successfully",
		slog.String("goal_id", goalID),
		slog.String("amount", req.Amount.String()),
		slog.Any("milestones_reached", thresholds),
		slog.Bool("completed", goal.IsCompleted))
	s.Publish(ctx, ports.Event{
		Type:              ports.GoalContributed,
		UserID:            userID,
		ResourceID:        goalID,
		MilestonesReached: thresholds,
		Completed:         goal.IsCompleted,
	})
	return &domain.GoalWithProgress{Goal: *goal, Progress: domain.DeriveGoalProgress(goal, s.Now())}, reached, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	if _, err := s.loadOwnedGoal(ctx, userID, goalID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete goal", slog.String("goal_id", goalID))
		}
		return err
	}

	s.LogInfo(ctx, "Goal deleted successfully", slog.String("goal_id", goalID))
	s.Publish(ctx, ports.Event{Type: ports.GoalDeleted, UserID: userID, ResourceID: goalID})
	return nil
}

// mutateGoal runs read -> mutate -> conditional write, re-reading and re-applying the
// mutation when another writer bumped the version first. Errors from mutate are
// returned as-is and never retried.
func (s *goalService) mutateGoal(ctx context.Context, userID, goalID string, mutate func(g *domain.SavingsGoal, now time.Time) error) (*domain.SavingsGoal, error) {
	for attempt := 0; ; attempt++ {
		goal, err := s.loadOwnedGoal(ctx, userID, goalID)
		if err != nil {
			return nil, err
		}

		now := s.Now()
		if err := mutate(goal, now); err != nil {
			return nil, err
		}
		goal.LastUpdatedAt = now
		goal.LastUpdatedBy = userID

		err = s.goalRepo.UpdateGoal(ctx, *goal)
		if err == nil {
			goal.Version++
			return goal, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to update goal", slog.String("goal_id", goalID))
			}
			return nil, err
		}
		if attempt >= s.maxRetries {
			s.LogInfo(ctx, "Giving up on goal write after version conflicts",
				slog.String("goal_id", goalID),
				slog.Int("attempts", attempt+1))
			return nil, fmt.Errorf("goal %s: %w", goalID, err)
		}
		s.LogDebug(ctx, "Goal version conflict, retrying",
			slog.String("goal_id", goalID),
			slog.Int("attempt", attempt+1))
		if err := s.waitBeforeRetry(ctx, attempt+1); err != nil {
			return nil, err
		}
	}
}

// waitBeforeRetry sleeps a jittered, linearly growing delay so that writers that
// collided do not re-read in lockstep. It returns early with ctx's error.
func (s *goalService) waitBeforeRetry(ctx context.Context, attempt int) error {
	if s.retryBackoff <= 0 {
		return ctx.Err()
	}
	delay := time.Duration(rand.Int64N(int64(s.retryBackoff) * int64(attempt)))
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *goalService) loadOwnedGoal(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find goal by ID", slog.String("goal_id", goalID))
		}
		return nil, err
	}
	if goal.UserID != userID {
		s.LogDebug(ctx, "Goal found but belongs to different user", slog.String("goal_id", goalID))
		return nil, apperrors.NewNotFoundError("goal " + goalID + " not found")
	}
	return goal, nil
}

func (s *goalService) listGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals")
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if goals == nil {
		goals = []domain.SavingsGoal{}
	}
	return goals, nil
}

// validateGoal checks field constraints plus the auto-save rules that only apply when enabled.
func validateGoal(g *domain.SavingsGoal) *apperrors.ValidationError {
	verr := validation.Struct(g)
	if as := g.AutoSave; as != nil && as.Enabled {
		if as.Amount.IsZero() {
			verr.Add("autoSave.amount", "is required")
		}
		if as.Frequency == "" {
			verr.Add("autoSave.frequency", "is required")
		}
	}
	return verr
}

func isEmptyGoalUpdate(req dto.UpdateGoalRequest) bool {
	return req.Name == nil && req.Description == nil && req.TargetAmount == nil &&
		req.Deadline == nil && req.Category == nil && req.Priority == nil && req.AutoSave == nil
}
