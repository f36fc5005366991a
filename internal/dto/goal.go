package dto

import (
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to open a new savings goal.
type CreateGoalRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	TargetAmount decimal.Decimal     `json:"targetAmount"`
	Deadline     time.Time           `json:"deadline"`
	Category     domain.GoalCategory `json:"category"` // Defaults to "other"
	Priority     domain.GoalPriority `json:"priority"` // Defaults to "medium"
	AutoSave     *domain.AutoSave    `json:"autoSave"`
}

// UpdateGoalRequest defines the directly editable goal fields.
// currentAmount, contributions and milestones only change through contributions.
type UpdateGoalRequest struct {
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	TargetAmount *decimal.Decimal     `json:"targetAmount"`
	Deadline     *time.Time           `json:"deadline"`
	Category     *domain.GoalCategory `json:"category"`
	Priority     *domain.GoalPriority `json:"priority"`
	AutoSave     *domain.AutoSave     `json:"autoSave"`
}

// AddContributionRequest is a deposit toward a goal.
type AddContributionRequest struct {
	Amount decimal.Decimal           `json:"amount"`
	Note   string                    `json:"note"`
	Source domain.ContributionSource `json:"source"` // Defaults to "manual"
}

// GoalResponse is a stored goal together with its derived progress fields.
type GoalResponse struct {
	GoalID               string                `json:"goalID"`
	UserID               string                `json:"userID"`
	Name                 string                `json:"name"`
	Description          string                `json:"description"`
	TargetAmount         decimal.Decimal       `json:"targetAmount"`
	CurrentAmount        decimal.Decimal       `json:"currentAmount"`
	Deadline             time.Time             `json:"deadline"`
	Category             domain.GoalCategory   `json:"category"`
	Priority             domain.GoalPriority   `json:"priority"`
	IsCompleted          bool                  `json:"isCompleted"`
	CompletedAt          *time.Time            `json:"completedAt,omitempty"`
	AutoSave             *domain.AutoSave      `json:"autoSave,omitempty"`
	Milestones           []domain.Milestone    `json:"milestones"`
	Contributions        []domain.Contribution `json:"contributions"`
	ProgressPercentage   decimal.Decimal       `json:"progressPercentage"`
	RemainingAmount      decimal.Decimal       `json:"remainingAmount"`
	DaysRemaining        int                   `json:"daysRemaining"`
	MonthlySavingsNeeded decimal.Decimal       `json:"monthlySavingsNeeded"`
	Status               domain.GoalStatus     `json:"status"`
	CreatedAt            time.Time             `json:"createdAt"`
	LastUpdatedAt        time.Time             `json:"lastUpdatedAt"`
	Version              int64                 `json:"version"`
}

// ListGoalsResponse wraps the goals of a user.
type ListGoalsResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ContributionResponse is the fully updated goal. MilestonesReached lists only the
// milestones this contribution crossed and is always an array.
type ContributionResponse struct {
	GoalResponse
	MilestonesReached []domain.Milestone `json:"milestonesReached"`
}

// ToGoalResponse converts a goal with derived fields to its response DTO.
func ToGoalResponse(gp domain.GoalWithProgress) GoalResponse {
	g := gp.Goal
	milestones := g.Milestones
	if milestones == nil {
		milestones = []domain.Milestone{}
	}
	contributions := g.Contributions
	if contributions == nil {
		contributions = []domain.Contribution{}
	}
	return GoalResponse{
		GoalID:               g.GoalID,
		UserID:               g.UserID,
		Name:                 g.Name,
		Description:          g.Description,
		TargetAmount:         g.TargetAmount,
		CurrentAmount:        g.CurrentAmount,
		Deadline:             g.Deadline,
		Category:             g.Category,
		Priority:             g.Priority,
		IsCompleted:          g.IsCompleted,
		CompletedAt:          g.CompletedAt,
		AutoSave:             g.AutoSave,
		Milestones:           milestones,
		Contributions:        contributions,
		ProgressPercentage:   gp.Progress.ProgressPercentage,
		RemainingAmount:      gp.Progress.RemainingAmount,
		DaysRemaining:        gp.Progress.DaysRemaining,
		MonthlySavingsNeeded: gp.Progress.MonthlySavingsNeeded,
		Status:               gp.Progress.Status,
		CreatedAt:            g.CreatedAt,
		LastUpdatedAt:        g.LastUpdatedAt,
		Version:              g.Version,
	}
}

// ToGoalResponses converts a list of goals with derived fields.
func ToGoalResponses(goals []domain.GoalWithProgress) []GoalResponse {
	out := make([]GoalResponse, len(goals))
	for i := range goals {
		out[i] = ToGoalResponse(goals[i])
	}
	return out
}
