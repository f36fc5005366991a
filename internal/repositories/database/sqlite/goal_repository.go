package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/empower_finance_app/internal/models"
	"github.com/SscSPs/empower_finance_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const goalColumns = `goal_id, user_id, name, description, target_amount, current_amount, deadline,
	category, priority, is_completed, completed_at, auto_save, milestones, contributions,
	created_at, created_by, last_updated_at, last_updated_by, version`

type GoalRepository struct {
	BaseRepository
}

func newGoalRepository(db *sql.DB) portsrepo.GoalRepositoryFacade {
	return &GoalRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.GoalRepositoryFacade = (*GoalRepository)(nil)

func scanGoal(row scanner) (domain.SavingsGoal, error) {
	var (
		m                         models.SavingsGoal
		target, current, deadline string
		created, lastUpdated      string
		completedAt, autoSave     sql.NullString
		milestones, contributions sql.NullString
	)
	err := row.Scan(
		&m.GoalID, &m.UserID, &m.Name, &m.Description, &target, &current, &deadline,
		&m.Category, &m.Priority, &m.IsCompleted, &completedAt, &autoSave, &milestones, &contributions,
		&created, &m.CreatedBy, &lastUpdated, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		return domain.SavingsGoal{}, err
	}

	var errs []error
	var perr error
	if m.TargetAmount, perr = decimal.NewFromString(target); perr != nil {
		errs = append(errs, fmt.Errorf("target_amount: %w", perr))
	}
	if m.CurrentAmount, perr = decimal.NewFromString(current); perr != nil {
		errs = append(errs, fmt.Errorf("current_amount: %w", perr))
	}
	if m.Deadline, perr = parseTime(deadline); perr != nil {
		errs = append(errs, fmt.Errorf("deadline: %w", perr))
	}
	if m.CompletedAt, perr = parseOptionalTime(completedAt); perr != nil {
		errs = append(errs, fmt.Errorf("completed_at: %w", perr))
	}
	if m.CreatedAt, perr = parseTime(created); perr != nil {
		errs = append(errs, fmt.Errorf("created_at: %w", perr))
	}
	if m.LastUpdatedAt, perr = parseTime(lastUpdated); perr != nil {
		errs = append(errs, fmt.Errorf("last_updated_at: %w", perr))
	}
	if err := errors.Join(errs...); err != nil {
		return domain.SavingsGoal{}, err
	}

	m.AutoSave = jsonBytes(autoSave)
	m.Milestones = jsonBytes(milestones)
	m.Contributions = jsonBytes(contributions)
	return mapping.ToDomainSavingsGoal(m)
}

// SaveGoal inserts a new goal document.
func (r *GoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m, err := mapping.ToModelSavingsGoal(goal)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode goal "+goal.GoalID, err)
	}

	query := `INSERT INTO savings_goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err = r.DB.ExecContext(ctx, query,
		m.GoalID,
		m.UserID,
		m.Name,
		m.Description,
		m.TargetAmount.String(),
		m.CurrentAmount.String(),
		formatTime(m.Deadline),
		m.Category,
		m.Priority,
		m.IsCompleted,
		formatOptionalTime(m.CompletedAt),
		jsonText(m.AutoSave),
		jsonText(m.Milestones),
		jsonText(m.Contributions),
		formatTime(m.CreatedAt),
		m.CreatedBy,
		formatTime(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert goal "+m.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a goal document by its ID.
func (r *GoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE goal_id = ?;`
	goal, err := scanGoal(r.DB.QueryRowContext(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("goal " + goalID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find goal by ID "+goalID, err)
	}
	return &goal, nil
}

// ListGoalsByUser retrieves all goals of a user, newest first.
func (r *GoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = ? ORDER BY created_at DESC, goal_id DESC;`
	rows, err := r.DB.QueryContext(ctx, query, userID)
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
func (r *GoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	m, err := mapping.ToModelSavingsGoal(goal)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode goal "+goal.GoalID, err)
	}

	query := `
		UPDATE savings_goals
		SET name = ?, description = ?, target_amount = ?, current_amount = ?, deadline = ?,
		    category = ?, priority = ?, is_completed = ?, completed_at = ?, auto_save = ?,
		    milestones = ?, contributions = ?, last_updated_at = ?, last_updated_by = ?,
		    version = version + 1
		WHERE goal_id = ? AND version = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Name,
		m.Description,
		m.TargetAmount.String(),
		m.CurrentAmount.String(),
		formatTime(m.Deadline),
		m.Category,
		m.Priority,
		m.IsCompleted,
		formatOptionalTime(m.CompletedAt),
		jsonText(m.AutoSave),
		jsonText(m.Milestones),
		jsonText(m.Contributions),
		formatTime(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.GoalID,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+m.GoalID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+m.GoalID, err)
	}
	if n == 0 {
		return r.missingOrConflict(ctx, `SELECT 1 FROM savings_goals WHERE goal_id = ?;`, m.GoalID, "goal")
	}
	return nil
}

// DeleteGoal removes a goal document.
func (r *GoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM savings_goals WHERE goal_id = ?;`, goalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, err)
	} else if n == 0 {
		return apperrors.NewNotFoundError("goal " + goalID + " not found")
	}
	return nil
}
