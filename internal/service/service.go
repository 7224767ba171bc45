package service

import (
	"context"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
	"github.com/nravichan/finance-manager-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthData, error)
	RefreshToken(ctx context.Context, userID string) (*models.AuthData, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)

	// Transactions
	ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter, now time.Time) (*models.TransactionListResponse, error)
	AddTransaction(ctx context.Context, userID string, req models.TransactionRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, req models.TransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error

	// Recurring rules
	AddRecurringRule(ctx context.Context, userID string, req models.RecurringRuleRequest) (*models.RecurringRule, error)
	ListRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error)
	GetRecurringRule(ctx context.Context, userID, id string) (*models.RecurringRule, error)
	UpdateRecurringRule(ctx context.Context, userID, id string, req models.RecurringRuleRequest) (*models.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, userID, id string) error
	GenerateDueTransactions(ctx context.Context, userID string, now time.Time) error

	// Budgets
	AddBudget(ctx context.Context, userID string, req models.BudgetRequest) (*models.Budget, error)
	GetBudgets(ctx context.Context, userID string, start, end time.Time) ([]models.BudgetUtilization, error)
	GetBudget(ctx context.Context, userID, id string) (*models.Budget, error)
	UpdateBudget(ctx context.Context, userID, id string, req models.BudgetRequest) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, id string) error

	// Savings goals
	CreateGoal(ctx context.Context, userID string, req models.SavingsGoalRequest) (*models.SavingsGoal, error)
	GetGoals(ctx context.Context, userID string) (*models.GoalListResponse, error)
	GetGoal(ctx context.Context, userID, id string) (*models.GoalDetail, error)
	UpdateGoal(ctx context.Context, userID, id string, req models.SavingsGoalRequest) (*models.SavingsGoal, error)
	UpdateGoalStatus(ctx context.Context, userID, id string, status models.GoalStatus) (*models.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
	Contribute(ctx context.Context, userID, goalID string, req models.ContributionRequest, now time.Time) (*models.ContributionResult, error)
	Withdraw(ctx context.Context, userID, goalID string, req models.ContributionRequest, now time.Time) (*models.ContributionResult, error)
	GetContributions(ctx context.Context, userID, goalID string, page, limit int) (*models.ContributionListResponse, error)
	DeleteContribution(ctx context.Context, userID, goalID, contributionID string) (*models.SavingsGoal, error)

	// Dashboard
	GetDashboard(ctx context.Context, userID string, now time.Time) (*models.DashboardData, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// dateOnly truncates a timestamp to its UTC calendar date. All occurrence
// arithmetic and stored ledger dates operate on these midnight values.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDate parses a request-level YYYY-MM-DD value.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
