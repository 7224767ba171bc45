package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// execer abstracts *sqlx.DB and *sql.Tx for the category helpers
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Budget repository methods
func (r *PostgresRepository) CreateBudget(ctx context.Context, budget *models.Budget) error {
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

	query := `
		INSERT INTO budgets (id, user_id, name, total_budget, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Generate a new UUID if not provided
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	budget.CreatedAt = now
	budget.UpdatedAt = now

	_, err = tx.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.Name, budget.TotalBudget,
		budget.StartDate, budget.EndDate, budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		return err
	}

	err = insertBudgetCategories(ctx, tx, budget)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertBudgetCategories(ctx context.Context, ex execer, budget *models.Budget) error {
	query := `INSERT INTO budget_categories (id, budget_id, category, amount) VALUES ($1, $2, $3, $4)`

	for i := range budget.Categories {
		c := &budget.Categories[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.BudgetID = budget.ID

		if _, err := ex.ExecContext(ctx, query, c.ID, c.BudgetID, c.Category, c.Amount); err != nil {
			return err
		}
	}

	return nil
}

func (r *PostgresRepository) GetBudget(ctx context.Context, userID, id string) (*models.Budget, error) {
	query := `SELECT * FROM budgets WHERE id = $1 AND user_id = $2`

	var budget models.Budget
	err := r.db.GetContext(ctx, &budget, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Budget not found
		}
		return nil, err
	}

	if err := r.loadCategories(ctx, &budget); err != nil {
		return nil, err
	}

	return &budget, nil
}

func (r *PostgresRepository) ListBudgetsOverlapping(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]models.Budget, error) {
	query := `
		SELECT * FROM budgets
		WHERE user_id = $1 AND start_date <= $2 AND end_date >= $3
		ORDER BY start_date DESC
	`

	var budgets []models.Budget
	err := r.db.SelectContext(ctx, &budgets, query, userID, end, start)
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		if err := r.loadCategories(ctx, &budgets[i]); err != nil {
			return nil, err
		}
	}

	return budgets, nil
}

func (r *PostgresRepository) loadCategories(ctx context.Context, budget *models.Budget) error {
	query := `SELECT * FROM budget_categories WHERE budget_id = $1 ORDER BY category`

	budget.Categories = []models.BudgetCategory{}
	return r.db.SelectContext(ctx, &budget.Categories, query, budget.ID)
}

func (r *PostgresRepository) UpdateBudget(ctx context.Context, budget *models.Budget) error {
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

	query := `
		UPDATE budgets
		SET name = $1, total_budget = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`

	budget.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, query,
		budget.Name, budget.TotalBudget, budget.StartDate, budget.EndDate,
		budget.UpdatedAt, budget.ID, budget.UserID)
	if err != nil {
		return err
	}

	// Replace category allotments wholesale
	_, err = tx.ExecContext(ctx, `DELETE FROM budget_categories WHERE budget_id = $1`, budget.ID)
	if err != nil {
		return err
	}

	for i := range budget.Categories {
		budget.Categories[i].ID = ""
	}
	err = insertBudgetCategories(ctx, tx, budget)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteBudget(ctx context.Context, userID, id string) error {
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

	// Delete category allotments first (due to foreign key constraint)
	_, err = tx.ExecContext(ctx, `DELETE FROM budget_categories WHERE budget_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
