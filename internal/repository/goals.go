package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// Savings goal repository methods
func (r *PostgresRepository) CreateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (id, user_id, name, category, target_amount, saved_amount,
			start_date, target_date, status, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	// Generate a new UUID if not provided
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		goal.ID, goal.UserID, goal.Name, goal.Category, goal.TargetAmount, goal.SavedAmount,
		goal.StartDate, goal.TargetDate, goal.Status, goal.Color, goal.CreatedAt, goal.UpdatedAt)

	return err
}

func (r *PostgresRepository) ListSavingsGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	query := `SELECT * FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC`

	var goals []models.SavingsGoal
	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *PostgresRepository) GetSavingsGoal(ctx context.Context, userID, id string) (*models.SavingsGoal, error) {
	query := `SELECT * FROM savings_goals WHERE id = $1 AND user_id = $2`

	var goal models.SavingsGoal
	err := r.db.GetContext(ctx, &goal, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Goal not found
		}
		return nil, err
	}

	return &goal, nil
}

func (r *PostgresRepository) UpdateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET name = $1, category = $2, target_amount = $3, saved_amount = $4,
			target_date = $5, status = $6, color = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`

	goal.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		goal.Name, goal.Category, goal.TargetAmount, goal.SavedAmount,
		goal.TargetDate, goal.Status, goal.Color, goal.UpdatedAt,
		goal.ID, goal.UserID)

	return err
}

func (r *PostgresRepository) DeleteSavingsGoal(ctx context.Context, userID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	// Delete contributions first (due to foreign key constraint)
	_, err = tx.ExecContext(ctx, `DELETE FROM contributions WHERE savings_goal_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Contribution repository methods
func (r *PostgresRepository) CreateContribution(ctx context.Context, c *models.Contribution) error {
	query := `
		INSERT INTO contributions (id, user_id, savings_goal_id, amount, type, note, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	c.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.SavingsGoalID, c.Amount, c.Type, c.Note, c.Date, c.CreatedAt)

	return err
}

func (r *PostgresRepository) ListContributions(
	ctx context.Context,
	goalID string,
	limit, offset int,
) ([]models.Contribution, error) {
	query := `
		SELECT * FROM contributions WHERE savings_goal_id = $1
		ORDER BY date DESC, created_at DESC
	`
	args := []interface{}{goalID}

	// A non-positive limit returns the full history
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	var contributions []models.Contribution
	err := r.db.SelectContext(ctx, &contributions, query, args...)
	if err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *PostgresRepository) CountContributions(ctx context.Context, goalID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM contributions WHERE savings_goal_id = $1`, goalID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PostgresRepository) SumContributions(ctx context.Context, goalID string) (float64, float64, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'deposit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'withdrawal'), 0)
		FROM contributions WHERE savings_goal_id = $1
	`

	var deposits, withdrawals float64
	err := r.db.QueryRowContext(ctx, query, goalID).Scan(&deposits, &withdrawals)
	if err != nil {
		return 0, 0, err
	}

	return deposits, withdrawals, nil
}

func (r *PostgresRepository) GetContribution(
	ctx context.Context,
	userID, goalID, contributionID string,
) (*models.Contribution, error) {
	query := `SELECT * FROM contributions WHERE id = $1 AND savings_goal_id = $2 AND user_id = $3`

	var c models.Contribution
	err := r.db.GetContext(ctx, &c, query, contributionID, goalID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Contribution not found
		}
		return nil, err
	}

	return &c, nil
}

func (r *PostgresRepository) DeleteContribution(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contributions WHERE id = $1`, id)
	return err
}
