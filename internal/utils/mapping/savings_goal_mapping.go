package mapping

import (
	"errors"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/models"
)

// ToModelSavingsGoal converts a domain SavingsGoal to its stored document.
func ToModelSavingsGoal(d domain.SavingsGoal) (models.SavingsGoal, error) {
	autoSave, err := marshalOptional(d.AutoSave)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	milestones, err := marshalList(d.Milestones)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	contributions, err := marshalList(d.Contributions)
	if err != nil {
		return models.SavingsGoal{}, err
	}

	var completedAt *time.Time
	if d.CompletedAt != nil {
		t := d.CompletedAt.UTC()
		completedAt = &t
	}

	return models.SavingsGoal{
		GoalID:        d.GoalID,
		UserID:        d.UserID,
		Name:          d.Name,
		Description:   d.Description,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		Deadline:      d.Deadline.UTC(),
		Category:      string(d.Category),
		Priority:      string(d.Priority),
		IsCompleted:   d.IsCompleted,
		CompletedAt:   completedAt,
		AutoSave:      autoSave,
		Milestones:    milestones,
		Contributions: contributions,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainSavingsGoal converts a stored goal document to a domain SavingsGoal.
func ToDomainSavingsGoal(m models.SavingsGoal) (domain.SavingsGoal, error) {
	autoSave, autoSaveErr := unmarshalOptional[domain.AutoSave](m.AutoSave, "auto_save")
	milestones, milestonesErr := unmarshalList[domain.Milestone](m.Milestones, "milestones")
	contributions, contributionsErr := unmarshalList[domain.Contribution](m.Contributions, "contributions")
	if err := errors.Join(autoSaveErr, milestonesErr, contributionsErr); err != nil {
		return domain.SavingsGoal{}, err
	}

	var completedAt *time.Time
	if m.CompletedAt != nil {
		t := m.CompletedAt.UTC()
		completedAt = &t
	}

	return domain.SavingsGoal{
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Deadline:      m.Deadline.UTC(),
		Category:      domain.GoalCategory(m.Category),
		Priority:      domain.GoalPriority(m.Priority),
		IsCompleted:   m.IsCompleted,
		CompletedAt:   completedAt,
		AutoSave:      autoSave,
		Milestones:    milestones,
		Contributions: contributions,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainSavingsGoalSlice converts stored goal documents to domain goals.
func ToDomainSavingsGoalSlice(ms []models.SavingsGoal) ([]domain.SavingsGoal, error) {
	ds := make([]domain.SavingsGoal, len(ms))
	for i, m := range ms {
		d, err := ToDomainSavingsGoal(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
