package config

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			user_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create recurring_rules table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS recurring_rules (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			category VARCHAR(255) NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			frequency VARCHAR(10) NOT NULL,
			interval INTEGER NOT NULL DEFAULT 1,
			start_date DATE NOT NULL,
			end_date DATE,
			last_generated DATE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create savings_goals table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS savings_goals (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL DEFAULT 'Savings',
			target_amount DOUBLE PRECISION NOT NULL,
			saved_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			start_date DATE NOT NULL,
			target_date DATE,
			status VARCHAR(10) NOT NULL DEFAULT 'active',
			color VARCHAR(10) NOT NULL DEFAULT '#6366f1',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create transactions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			category VARCHAR(255) NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			date DATE NOT NULL,
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			recurring_id VARCHAR(36) REFERENCES recurring_rules(id) ON DELETE SET NULL,
			savings_goal_id VARCHAR(36) REFERENCES savings_goals(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// One materialized transaction per (owner, rule, occurrence date). This
	// constraint closes the check-then-create race between concurrent
	// generator runs for the same owner.
	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_occurrence
		ON transactions(user_id, recurring_id, date)
		WHERE recurring_id IS NOT NULL
	`)
	if err != nil {
		return err
	}

	// Create budgets table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS budgets (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			total_budget DOUBLE PRECISION NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create budget_categories table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS budget_categories (
			id VARCHAR(36) PRIMARY KEY,
			budget_id VARCHAR(36) NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
			category VARCHAR(255) NOT NULL,
			amount DOUBLE PRECISION NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create contributions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS contributions (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			savings_goal_id VARCHAR(36) NOT NULL REFERENCES savings_goals(id) ON DELETE CASCADE,
			amount DOUBLE PRECISION NOT NULL,
			type VARCHAR(10) NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_recurring_rules_user ON recurring_rules(user_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_budgets_user_period ON budgets(user_id, start_date, end_date)",
		"CREATE INDEX IF NOT EXISTS idx_contributions_goal_date ON contributions(savings_goal_id, date)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			slog.Warn("failed to create index", "error", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
