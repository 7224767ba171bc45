package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
)

// GetDashboard assembles the full dashboard view: all-time totals, monthly
// buckets, category breakdown, goal and budget summaries, and the
// month-over-month percentage changes. The recurring generator runs first so
// the figures include everything due as of now.
func (s *DefaultService) GetDashboard(
	ctx context.Context,
	userID string,
	now time.Time,
) (*models.DashboardData, error) {
	if err := s.GenerateDueTransactions(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("error generating due transactions: %w", err)
	}

	transactions, err := s.repo.ListTransactions(ctx, userID, models.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	var totalIncome, totalExpense, totalSavings float64
	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			totalIncome += t.Amount
		case models.TypeExpense:
			totalExpense += t.Amount
		case models.TypeSaving:
			totalSavings += t.Amount
		}
	}

	data := &models.DashboardData{
		TotalIncome:         totalIncome,
		TotalExpense:        totalExpense,
		TotalSavings:        totalSavings,
		Balance:             totalIncome - (totalExpense + totalSavings),
		MonthlySummary:      monthlySummary(transactions),
		CategoryWiseExpense: categoryWiseExpense(transactions),
		MonthlyChange:       monthlyChange(transactions, now),
		RecentTransactions:  recentTransactions(transactions, 10),
	}

	goals, err := s.repo.ListSavingsGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing savings goals: %w", err)
	}

	for _, g := range goals {
		data.SavingsGoals.TotalTarget += g.TargetAmount
		data.SavingsGoals.TotalSaved += g.SavedAmount
		switch g.Status {
		case models.GoalActive:
			data.SavingsGoals.ActiveGoals++
		case models.GoalCompleted:
			data.SavingsGoals.CompletedGoals++
		}
	}

	monthStart, monthEnd := monthBounds(now)
	budgets, err := s.repo.ListBudgetsOverlapping(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("error listing budgets: %w", err)
	}

	var totalBudget float64
	for _, b := range budgets {
		totalBudget += b.TotalBudget
	}

	// Utilized budget counts expenses and savings alike; remaining may go
	// negative to signal overspend.
	utilized := totalExpense + totalSavings
	data.Budget = models.DashboardBudget{
		TotalBudget:     totalBudget,
		UtilizedBudget:  utilized,
		RemainingBudget: totalBudget - utilized,
	}

	return data, nil
}

// monthlySummary buckets transactions by year-month, sorted ascending, with
// calendar month names as display labels.
func monthlySummary(transactions []models.Transaction) []models.MonthlySummary {
	buckets := map[string]*models.MonthlySummary{}

	for _, t := range transactions {
		key := t.Date.Format("2006-01")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.MonthlySummary{Name: t.Date.Month().String()[:3]}
			buckets[key] = bucket
		}

		switch t.Type {
		case models.TypeIncome:
			bucket.Income += t.Amount
		case models.TypeExpense:
			bucket.Expenses += t.Amount
		case models.TypeSaving:
			bucket.Savings += t.Amount
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	summary := make([]models.MonthlySummary, 0, len(keys))
	for _, k := range keys {
		summary = append(summary, *buckets[k])
	}

	return summary
}

func categoryWiseExpense(transactions []models.Transaction) []models.CategoryAmount {
	byCategory := map[string]float64{}
	for _, t := range transactions {
		if t.Type == models.TypeExpense {
			byCategory[t.Category] += t.Amount
		}
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	breakdown := make([]models.CategoryAmount, 0, len(names))
	for _, name := range names {
		breakdown = append(breakdown, models.CategoryAmount{Name: name, Value: byCategory[name]})
	}

	return breakdown
}

// monthlyChange compares the current calendar month against the previous one
// per transaction type.
func monthlyChange(transactions []models.Transaction, now time.Time) models.MonthlyChange {
	curStart, curEnd := monthBounds(now)
	prevStart, prevEnd := monthBounds(curStart.AddDate(0, 0, -1))

	var cur, prev struct{ income, expense, savings float64 }
	for _, t := range transactions {
		var bucket *struct{ income, expense, savings float64 }
		switch {
		case inRange(t.Date, curStart, curEnd):
			bucket = &cur
		case inRange(t.Date, prevStart, prevEnd):
			bucket = &prev
		default:
			continue
		}

		switch t.Type {
		case models.TypeIncome:
			bucket.income += t.Amount
		case models.TypeExpense:
			bucket.expense += t.Amount
		case models.TypeSaving:
			bucket.savings += t.Amount
		}
	}

	return models.MonthlyChange{
		Income:  calcPercentChange(cur.income, prev.income),
		Expense: calcPercentChange(cur.expense, prev.expense),
		Savings: calcPercentChange(cur.savings, prev.savings),
	}
}

func recentTransactions(transactions []models.Transaction, n int) []models.Transaction {
	// Listing is already ordered newest first
	if len(transactions) > n {
		return transactions[:n]
	}
	return transactions
}
