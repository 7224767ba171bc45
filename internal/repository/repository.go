package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	CreateOccurrence(ctx context.Context, tx *models.Transaction) (bool, error)
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, userID string, filter models.TransactionFilter) (int, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	FindOccurrence(ctx context.Context, userID, ruleID string, date time.Time) (*models.Transaction, error)

	// Recurring rule operations
	CreateRecurringRule(ctx context.Context, rule *models.RecurringRule) error
	ListRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error)
	ListActiveRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error)
	GetRecurringRule(ctx context.Context, userID, id string) (*models.RecurringRule, error)
	UpdateRecurringRule(ctx context.Context, rule *models.RecurringRule) error
	DeleteRecurringRule(ctx context.Context, userID, id string) error
	UpdateRuleCursor(ctx context.Context, ruleID string, cursor time.Time) error

	// Budget operations
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudget(ctx context.Context, userID, id string) (*models.Budget, error)
	ListBudgetsOverlapping(ctx context.Context, userID string, start, end time.Time) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, userID, id string) error

	// Savings goal operations
	CreateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error
	ListSavingsGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error)
	GetSavingsGoal(ctx context.Context, userID, id string) (*models.SavingsGoal, error)
	UpdateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error
	DeleteSavingsGoal(ctx context.Context, userID, id string) error

	// Contribution operations
	CreateContribution(ctx context.Context, c *models.Contribution) error
	ListContributions(ctx context.Context, goalID string, limit, offset int) ([]models.Contribution, error)
	CountContributions(ctx context.Context, goalID string) (int, error)
	SumContributions(ctx context.Context, goalID string) (deposits, withdrawals float64, err error)
	GetContribution(ctx context.Context, userID, goalID, contributionID string) (*models.Contribution, error)
	DeleteContribution(ctx context.Context, id string) error
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}
