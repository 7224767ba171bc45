package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
)

func (s *DefaultService) AddBudget(
	ctx context.Context,
	userID string,
	req models.BudgetRequest,
) (*models.Budget, error) {
	if err := validateCategorySum(req); err != nil {
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	budget := &models.Budget{
		UserID:      userID,
		Name:        req.Name,
		TotalBudget: req.TotalBudget,
		StartDate:   startDate,
		EndDate:     endDate,
		Categories:  toBudgetCategories(req.Categories),
	}

	if err := s.repo.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("error creating budget: %w", err)
	}

	return budget, nil
}

// GetBudgets returns the budgets overlapping [start, end], each with its
// read-time utilization. Remaining amounts are not clipped at zero: a
// negative remaining signals overspend.
func (s *DefaultService) GetBudgets(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]models.BudgetUtilization, error) {
	budgets, err := s.repo.ListBudgetsOverlapping(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing budgets: %w", err)
	}

	results := make([]models.BudgetUtilization, 0, len(budgets))
	for i := range budgets {
		utilization, err := s.budgetUtilization(ctx, userID, &budgets[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *utilization)
	}

	return results, nil
}

func (s *DefaultService) budgetUtilization(
	ctx context.Context,
	userID string,
	budget *models.Budget,
) (*models.BudgetUtilization, error) {
	// Fetch transactions within the budget period
	transactions, err := s.repo.ListTransactions(ctx, userID, models.TransactionFilter{
		StartDate: &budget.StartDate,
		EndDate:   &budget.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing transactions for budget: %w", err)
	}

	var totalSpent float64
	spentByCategory := map[string]float64{}
	for _, t := range transactions {
		if t.Type != models.TypeExpense {
			continue
		}
		totalSpent += t.Amount
		spentByCategory[t.Category] += t.Amount
	}

	categories := make([]models.BudgetCategoryUtilization, 0, len(budget.Categories))
	for _, c := range budget.Categories {
		spent := spentByCategory[c.Category]
		categories = append(categories, models.BudgetCategoryUtilization{
			Category:  c.Category,
			Budget:    c.Amount,
			Spent:     spent,
			Remaining: c.Amount - spent,
		})
	}

	return &models.BudgetUtilization{
		ID:          budget.ID,
		Name:        budget.Name,
		TotalBudget: budget.TotalBudget,
		TotalSpent:  totalSpent,
		Remaining:   budget.TotalBudget - totalSpent,
		Categories:  categories,
		StartDate:   budget.StartDate,
		EndDate:     budget.EndDate,
	}, nil
}

func (s *DefaultService) GetBudget(ctx context.Context, userID, id string) (*models.Budget, error) {
	budget, err := s.repo.GetBudget(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting budget: %w", err)
	}

	if budget == nil {
		return nil, ErrNotFound
	}

	return budget, nil
}

func (s *DefaultService) UpdateBudget(
	ctx context.Context,
	userID, id string,
	req models.BudgetRequest,
) (*models.Budget, error) {
	if err := validateCategorySum(req); err != nil {
		return nil, err
	}

	budget, err := s.repo.GetBudget(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting budget: %w", err)
	}

	if budget == nil {
		return nil, ErrNotFound
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	budget.Name = req.Name
	budget.TotalBudget = req.TotalBudget
	budget.StartDate = startDate
	budget.EndDate = endDate
	budget.Categories = toBudgetCategories(req.Categories)

	if err := s.repo.UpdateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("error updating budget: %w", err)
	}

	return budget, nil
}

func (s *DefaultService) DeleteBudget(ctx context.Context, userID, id string) error {
	budget, err := s.repo.GetBudget(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("error getting budget: %w", err)
	}

	if budget == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteBudget(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting budget: %w", err)
	}

	return nil
}

// validateCategorySum rejects budgets whose category allotments exceed the
// total.
func validateCategorySum(req models.BudgetRequest) error {
	var sum float64
	for _, c := range req.Categories {
		sum += c.Amount
	}

	if sum > req.TotalBudget {
		return ErrCategorySumExceeds
	}

	return nil
}

func toBudgetCategories(reqs []models.BudgetCategoryRequest) []models.BudgetCategory {
	categories := make([]models.BudgetCategory, 0, len(reqs))
	for _, c := range reqs {
		categories = append(categories, models.BudgetCategory{
			Category: c.Category,
			Amount:   c.Amount,
		})
	}
	return categories
}
