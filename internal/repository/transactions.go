package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// Transaction repository methods
func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, name, type, amount, category, note, date,
			is_recurring, recurring_id, savings_goal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	// Generate a new UUID if not provided
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Name, tx.Type, tx.Amount, tx.Category, tx.Note, tx.Date,
		tx.IsRecurring, tx.RecurringID, tx.SavingsGoalID, tx.CreatedAt, tx.UpdatedAt)

	return err
}

// CreateOccurrence inserts a generator-materialized transaction. The partial
// unique index on (user_id, recurring_id, date) makes the insert a no-op when
// the occurrence already exists, so concurrent generator runs cannot
// double-create. Returns whether a row was actually inserted.
func (r *PostgresRepository) CreateOccurrence(ctx context.Context, tx *models.Transaction) (bool, error) {
	query := `
		INSERT INTO transactions (id, user_id, name, type, amount, category, note, date,
			is_recurring, recurring_id, savings_goal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id, recurring_id, date) WHERE recurring_id IS NOT NULL DO NOTHING
	`

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Name, tx.Type, tx.Amount, tx.Category, tx.Note, tx.Date,
		tx.IsRecurring, tx.RecurringID, tx.SavingsGoalID, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE id = $1 AND user_id = $2`

	var tx models.Transaction
	err := r.db.GetContext(ctx, &tx, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Transaction not found
		}
		return nil, err
	}

	return &tx, nil
}

// buildTransactionFilter appends WHERE clauses for the optional filter
// predicates, returning the clause suffix and its arguments.
func buildTransactionFilter(filter models.TransactionFilter, args []interface{}) (string, []interface{}) {
	clause := ""

	if filter.Type != "" {
		args = append(args, filter.Type)
		clause += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clause += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clause += fmt.Sprintf(" AND (name ILIKE $%d OR category ILIKE $%d)", len(args), len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clause += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		clause += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	return clause, args
}

func (r *PostgresRepository) ListTransactions(
	ctx context.Context,
	userID string,
	filter models.TransactionFilter,
) ([]models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	clause, args := buildTransactionFilter(filter, args)
	query += clause
	query += ` ORDER BY date DESC, created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))

		page := filter.Page
		if page < 1 {
			page = 1
		}
		args = append(args, (page-1)*filter.Limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var transactions []models.Transaction
	err := r.db.SelectContext(ctx, &transactions, query, args...)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *PostgresRepository) CountTransactions(
	ctx context.Context,
	userID string,
	filter models.TransactionFilter,
) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	clause, args := buildTransactionFilter(filter, args)
	query += clause

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		UPDATE transactions
		SET name = $1, type = $2, amount = $3, category = $4, note = $5, date = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`

	tx.UpdatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		tx.Name, tx.Type, tx.Amount, tx.Category, tx.Note, tx.Date, tx.UpdatedAt,
		tx.ID, tx.UserID)

	return err
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

// FindOccurrence looks up the transaction materialized for a rule on a given
// date, if any.
func (r *PostgresRepository) FindOccurrence(
	ctx context.Context,
	userID, ruleID string,
	date time.Time,
) (*models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE user_id = $1 AND recurring_id = $2 AND date = $3`

	var tx models.Transaction
	err := r.db.GetContext(ctx, &tx, query, userID, ruleID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No occurrence yet
		}
		return nil, err
	}

	return &tx, nil
}
