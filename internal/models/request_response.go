package models

import "time"

// Request models
type RegisterRequest struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TransactionRequest struct {
	Name     string  `json:"name" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=income expense saving"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category" binding:"required"`
	Note     string  `json:"note"`
	Date     string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type RecurringRuleRequest struct {
	Name      string  `json:"name" binding:"required"`
	Type      string  `json:"type" binding:"required,oneof=income expense"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Category  string  `json:"category" binding:"required"`
	Note      string  `json:"note"`
	Frequency string  `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	Interval  int     `json:"interval" binding:"omitempty,gt=0"`
	StartDate string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	IsActive  *bool   `json:"isActive"`
}

type BudgetCategoryRequest struct {
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gte=0"`
}

type BudgetRequest struct {
	Name        string                  `json:"name" binding:"required"`
	TotalBudget float64                 `json:"totalBudget" binding:"required,gt=0"`
	Categories  []BudgetCategoryRequest `json:"categories" binding:"omitempty,dive"`
	StartDate   string                  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string                  `json:"endDate" binding:"required,datetime=2006-01-02"`
}

type SavingsGoalRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	TargetAmount float64 `json:"targetAmount" binding:"required,gt=0"`
	TargetDate   string  `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Color        string  `json:"color"`
}

type GoalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed cancelled"`
}

type ContributionRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
	Date   string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// TransactionFilter narrows a transaction listing. Zero values mean
// "no constraint"; Page/Limit of zero disable pagination.
type TransactionFilter struct {
	Type      string
	Category  string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// Response models. Every endpoint answers with a {success, data|message}
// envelope.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AuthData struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	User        *User  `json:"user,omitempty"`
}

type AuthResponse struct {
	Success bool     `json:"success"`
	Data    AuthData `json:"data"`
}

type TransactionSummary struct {
	CurrentBalance   float64 `json:"currentBalance"`
	Savings          float64 `json:"savings"`
	IncomeThisMonth  float64 `json:"incomeThisMonth"`
	ExpenseThisMonth float64 `json:"expenseThisMonth"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type TransactionListResponse struct {
	Success    bool               `json:"success"`
	Data       []Transaction      `json:"data"`
	Summary    TransactionSummary `json:"summary"`
	Pagination *Pagination        `json:"pagination,omitempty"`
}

type BudgetUtilization struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	TotalBudget float64                     `json:"totalBudget"`
	TotalSpent  float64                     `json:"totalSpent"`
	Remaining   float64                     `json:"remainingTotal"`
	Categories  []BudgetCategoryUtilization `json:"categories"`
	StartDate   time.Time                   `json:"startDate"`
	EndDate     time.Time                   `json:"endDate"`
}

type BudgetCategoryUtilization struct {
	Category  string  `json:"category"`
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

type GoalSummary struct {
	TotalGoals     int     `json:"totalGoals"`
	TotalActive    int     `json:"totalActive"`
	TotalCompleted int     `json:"totalCompleted"`
	TotalSavings   float64 `json:"totalSavings"`
	TotalTarget    float64 `json:"totalTarget"`
}

type GoalListResponse struct {
	Success bool          `json:"success"`
	Summary GoalSummary   `json:"summary"`
	Data    []SavingsGoal `json:"data"`
}

type GoalDetail struct {
	SavingsGoal
	Contributions []Contribution `json:"contributions"`
}

type ContributionResult struct {
	Goal         *SavingsGoal  `json:"goal"`
	Contribution *Contribution `json:"contribution"`
	Transaction  *Transaction  `json:"transaction"`
}

type ContributionSummary struct {
	TotalContributions int     `json:"totalContributions"`
	TotalDeposits      float64 `json:"totalDeposits"`
	TotalWithdrawals   float64 `json:"totalWithdrawals"`
	NetSaved           float64 `json:"netSaved"`
}

type ContributionListResponse struct {
	Success    bool                `json:"success"`
	Summary    ContributionSummary `json:"summary"`
	Data       []Contribution      `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

type MonthlySummary struct {
	Name     string  `json:"name"`
	Income   float64 `json:"Income"`
	Expenses float64 `json:"Expenses"`
	Savings  float64 `json:"Savings"`
}

type CategoryAmount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DashboardBudget struct {
	TotalBudget     float64 `json:"totalBudget"`
	UtilizedBudget  float64 `json:"utilizedBudget"`
	RemainingBudget float64 `json:"remainingBudget"`
}

type DashboardGoals struct {
	TotalTarget    float64 `json:"totalTarget"`
	TotalSaved     float64 `json:"totalSaved"`
	ActiveGoals    int     `json:"activeGoals"`
	CompletedGoals int     `json:"completedGoals"`
}

type MonthlyChange struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

type DashboardData struct {
	TotalIncome         float64          `json:"totalIncome"`
	TotalExpense        float64          `json:"totalExpense"`
	TotalSavings        float64          `json:"totalSavings"`
	Balance             float64          `json:"balance"`
	Budget              DashboardBudget  `json:"budget"`
	SavingsGoals        DashboardGoals   `json:"savingsGoals"`
	MonthlySummary      []MonthlySummary `json:"monthlySummary"`
	CategoryWiseExpense []CategoryAmount `json:"categoryWiseExpense"`
	MonthlyChange       MonthlyChange    `json:"monthlyChange"`
	RecentTransactions  []Transaction    `json:"recentTransactions"`
}

type DashboardResponse struct {
	Success bool          `json:"success"`
	Data    DashboardData `json:"data"`
}
