package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// Recurring rule repository methods
func (r *PostgresRepository) CreateRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	query := `
		INSERT INTO recurring_rules (id, user_id, name, type, amount, category, note,
			frequency, interval, start_date, end_date, last_generated, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	// Generate a new UUID if not provided
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		rule.ID, rule.UserID, rule.Name, rule.Type, rule.Amount, rule.Category, rule.Note,
		rule.Frequency, rule.Interval, rule.StartDate, rule.EndDate, rule.LastGenerated,
		rule.IsActive, rule.CreatedAt, rule.UpdatedAt)

	return err
}

func (r *PostgresRepository) ListRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error) {
	query := `SELECT * FROM recurring_rules WHERE user_id = $1 ORDER BY created_at DESC`

	var rules []models.RecurringRule
	err := r.db.SelectContext(ctx, &rules, query, userID)
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *PostgresRepository) ListActiveRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error) {
	query := `SELECT * FROM recurring_rules WHERE user_id = $1 AND is_active = TRUE`

	var rules []models.RecurringRule
	err := r.db.SelectContext(ctx, &rules, query, userID)
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *PostgresRepository) GetRecurringRule(ctx context.Context, userID, id string) (*models.RecurringRule, error) {
	query := `SELECT * FROM recurring_rules WHERE id = $1 AND user_id = $2`

	var rule models.RecurringRule
	err := r.db.GetContext(ctx, &rule, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Rule not found
		}
		return nil, err
	}

	return &rule, nil
}

func (r *PostgresRepository) UpdateRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	query := `
		UPDATE recurring_rules
		SET name = $1, type = $2, amount = $3, category = $4, note = $5,
			frequency = $6, interval = $7, start_date = $8, end_date = $9,
			is_active = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
	`

	rule.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		rule.Name, rule.Type, rule.Amount, rule.Category, rule.Note,
		rule.Frequency, rule.Interval, rule.StartDate, rule.EndDate,
		rule.IsActive, rule.UpdatedAt, rule.ID, rule.UserID)

	return err
}

func (r *PostgresRepository) DeleteRecurringRule(ctx context.Context, userID, id string) error {
	// Already-materialized transactions keep their back-reference nulled by
	// the schema's ON DELETE SET NULL; deletion never cascades to them.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_rules WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// UpdateRuleCursor persists the generation cursor. Called once per generated
// occurrence so a crash mid-run resumes from the last committed date.
func (r *PostgresRepository) UpdateRuleCursor(ctx context.Context, ruleID string, cursor time.Time) error {
	query := `UPDATE recurring_rules SET last_generated = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, cursor, time.Now().UTC(), ruleID)
	return err
}
