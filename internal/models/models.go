package models

import (
	"time"
)

// TransactionType classifies a cash-flow event
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeSaving  TransactionType = "saving"
)

// Frequency is the repetition unit of a recurring rule
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// GoalStatus is the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalCancelled GoalStatus = "cancelled"
)

// ContributionType distinguishes deposits from withdrawals on a goal
type ContributionType string

const (
	ContributionDeposit    ContributionType = "deposit"
	ContributionWithdrawal ContributionType = "withdrawal"
)

// User represents a user in the system
type User struct {
	ID        string    `db:"id" json:"id"`
	UserName  string    `db:"user_name" json:"userName"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Transaction represents a realized cash-flow event on a user's ledger.
// Rows are created by direct user action or materialized by the recurring
// generator, in which case IsRecurring is set and RecurringID points back
// at the originating rule.
type Transaction struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	Name          string          `db:"name" json:"name"`
	Type          TransactionType `db:"type" json:"type"`
	Amount        float64         `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	Note          string          `db:"note" json:"note,omitempty"`
	Date          time.Time       `db:"date" json:"date"`
	IsRecurring   bool            `db:"is_recurring" json:"isRecurring"`
	RecurringID   *string         `db:"recurring_id" json:"recurringId,omitempty"`
	SavingsGoalID *string         `db:"savings_goal_id" json:"savingsGoalId,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// RecurringRule describes a repeating cash-flow event. LastGenerated is the
// generation cursor: the next date the rule is due to materialize. It is
// mutated exclusively by the generator.
type RecurringRule struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	Name          string          `db:"name" json:"name"`
	Type          TransactionType `db:"type" json:"type"` // income or expense
	Amount        float64         `db:"amount" json:"amount"`
	Category      string          `db:"category" json:"category"`
	Note          string          `db:"note" json:"note,omitempty"`
	Frequency     Frequency       `db:"frequency" json:"frequency"`
	Interval      int             `db:"interval" json:"interval"`
	StartDate     time.Time       `db:"start_date" json:"startDate"`
	EndDate       *time.Time      `db:"end_date" json:"endDate,omitempty"`
	LastGenerated *time.Time      `db:"last_generated" json:"lastGenerated,omitempty"`
	IsActive      bool            `db:"is_active" json:"isActive"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// Budget is a spending plan for a period, optionally split by category
type Budget struct {
	ID          string           `db:"id" json:"id"`
	UserID      string           `db:"user_id" json:"userId"`
	Name        string           `db:"name" json:"name"`
	TotalBudget float64          `db:"total_budget" json:"totalBudget"`
	StartDate   time.Time        `db:"start_date" json:"startDate"`
	EndDate     time.Time        `db:"end_date" json:"endDate"`
	Categories  []BudgetCategory `db:"-" json:"categories"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// BudgetCategory is one category allotment inside a budget
type BudgetCategory struct {
	ID       string  `db:"id" json:"-"`
	BudgetID string  `db:"budget_id" json:"-"`
	Category string  `db:"category" json:"category"`
	Amount   float64 `db:"amount" json:"amount"`
}

// SavingsGoal tracks progress toward a target amount. Progress is derived
// at read time, not stored.
type SavingsGoal struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"userId"`
	Name         string     `db:"name" json:"name"`
	Category     string     `db:"category" json:"category"`
	TargetAmount float64    `db:"target_amount" json:"targetAmount"`
	SavedAmount  float64    `db:"saved_amount" json:"savedAmount"`
	StartDate    time.Time  `db:"start_date" json:"startDate"`
	TargetDate   *time.Time `db:"target_date" json:"targetDate,omitempty"`
	Status       GoalStatus `db:"status" json:"status"`
	Color        string     `db:"color" json:"color"`
	Progress     int        `db:"-" json:"progress"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// Contribution is a single deposit to or withdrawal from a savings goal
type Contribution struct {
	ID            string           `db:"id" json:"id"`
	UserID        string           `db:"user_id" json:"userId"`
	SavingsGoalID string           `db:"savings_goal_id" json:"savingsGoalId"`
	Amount        float64          `db:"amount" json:"amount"`
	Type          ContributionType `db:"type" json:"type"`
	Note          string           `db:"note" json:"note,omitempty"`
	Date          time.Time        `db:"date" json:"date"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
}
