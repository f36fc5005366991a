package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
	"github.com/SscSPs/empower_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const goalColumns = `goal_id, user_id, name, description, target_amount, current_amount, deadline,
	category, priority, is_completed, completed_at, auto_save, milestones, contributions,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(db DB) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

func scanGoal(row scanner) (domain.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.Deadline,
		&m.Category,
		&m.Priority,
		&m.IsCompleted,
		&m.CompletedAt,
		&m.AutoSave,
		&m.Milestones,
		&m.Contributions,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return domain.SavingsGoal{}, err
	}
	return mapping.ToDomainSavingsGoal(m)
}

// SaveGoal inserts a new goal document.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m, err := mapping.ToModelSavingsGoal(goal)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode goal "+goal.GoalID, err)
	}

	query := `INSERT INTO savings_goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`
	_, err = r.Pool.Exec(ctx, query,
		m.GoalID,
		m.UserID,
		m.Name,
		m.Description,
		m.TargetAmount,
		m.CurrentAmount,
		m.Deadline,
		m.Category,
		m.Priority,
		m.IsCompleted,
		m.CompletedAt,
		m.AutoSave,
		m.Milestones,
		m.Contributions,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert goal "+m.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a goal document by its ID.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE goal_id = $1;`
	goal, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("goal " + goalID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find goal by ID "+goalID, err)
	}
	return &goal, nil
}

// ListGoalsByUser retrieves all goals of a user, newest first.
func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC, goal_id DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query goals for user "+userID, err)
	}
	defer rows.Close()

	goals := []domain.SavingsGoal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan goal row for user "+userID, err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating goal rows for user "+userID, err)
	}
	return goals, nil
}

// UpdateGoal replaces the whole document in one statement, guarded by the version column.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m, err := mapping.ToModelSavingsGoal(goal)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode goal "+goal.GoalID, err)
	}

	query := `
		UPDATE savings_goals
		SET name = $2, description = $3, target_amount = $4, current_amount = $5, deadline = $6,
		    category = $7, priority = $8, is_completed = $9, completed_at = $10, auto_save = $11,
		    milestones = $12, contributions = $13, last_updated_at = $14, last_updated_by = $15,
		    version = version + 1
		WHERE goal_id = $1 AND version = $16;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.GoalID,
		m.Name,
		m.Description,
		m.TargetAmount,
		m.CurrentAmount,
		m.Deadline,
		m.Category,
		m.Priority,
		m.IsCompleted,
		m.CompletedAt,
		m.AutoSave,
		m.Milestones,
		m.Contributions,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+m.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, `SELECT 1 FROM savings_goals WHERE goal_id = $1;`, m.GoalID, "goal")
	}
	return nil
}

// DeleteGoal removes a goal document.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM savings_goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("goal " + goalID + " not found")
	}
	return nil
}
