package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
)

const defaultGoalColor = "#6366f1"

func (s *DefaultService) CreateGoal(
	ctx context.Context,
	userID string,
	req models.SavingsGoalRequest,
) (*models.SavingsGoal, error) {
	var targetDate *time.Time
	if req.TargetDate != "" {
		t, err := parseDate(req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("invalid target date: %w", err)
		}
		targetDate = &t
	}

	category := req.Category
	if category == "" {
		category = "Savings"
	}

	color := req.Color
	if color == "" {
		color = defaultGoalColor
	}

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         req.Name,
		Category:     category,
		TargetAmount: req.TargetAmount,
		StartDate:    dateOnly(time.Now()),
		TargetDate:   targetDate,
		Status:       models.GoalActive,
		Color:        color,
	}

	if err := s.repo.CreateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("error creating savings goal: %w", err)
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)
	return goal, nil
}

func (s *DefaultService) GetGoals(ctx context.Context, userID string) (*models.GoalListResponse, error) {
	goals, err := s.repo.ListSavingsGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing savings goals: %w", err)
	}

	summary := models.GoalSummary{TotalGoals: len(goals)}
	for i := range goals {
		goals[i].Progress = goalProgress(goals[i].SavedAmount, goals[i].TargetAmount)

		switch goals[i].Status {
		case models.GoalActive:
			summary.TotalActive++
		case models.GoalCompleted:
			summary.TotalCompleted++
		}
		summary.TotalSavings += goals[i].SavedAmount
		summary.TotalTarget += goals[i].TargetAmount
	}

	return &models.GoalListResponse{
		Success: true,
		Summary: summary,
		Data:    goals,
	}, nil
}

func (s *DefaultService) GetGoal(ctx context.Context, userID, id string) (*models.GoalDetail, error) {
	goal, err := s.repo.GetSavingsGoal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return nil, ErrNotFound
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)

	contributions, err := s.repo.ListContributions(ctx, id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("error listing contributions: %w", err)
	}

	return &models.GoalDetail{
		SavingsGoal:   *goal,
		Contributions: contributions,
	}, nil
}

func (s *DefaultService) UpdateGoal(
	ctx context.Context,
	userID, id string,
	req models.SavingsGoalRequest,
) (*models.SavingsGoal, error) {
	goal, err := s.repo.GetSavingsGoal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return nil, ErrNotFound
	}

	goal.Name = req.Name
	if req.Category != "" {
		goal.Category = req.Category
	}
	goal.TargetAmount = req.TargetAmount
	if req.TargetDate != "" {
		t, err := parseDate(req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("invalid target date: %w", err)
		}
		goal.TargetDate = &t
	}
	if req.Color != "" {
		goal.Color = req.Color
	}

	if err := s.repo.UpdateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("error updating savings goal: %w", err)
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)
	return goal, nil
}

func (s *DefaultService) UpdateGoalStatus(
	ctx context.Context,
	userID, id string,
	status models.GoalStatus,
) (*models.SavingsGoal, error) {
	goal, err := s.repo.GetSavingsGoal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return nil, ErrNotFound
	}

	goal.Status = status

	if err := s.repo.UpdateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("error updating goal status: %w", err)
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)
	return goal, nil
}

// DeleteGoal removes the goal and its contribution history.
func (s *DefaultService) DeleteGoal(ctx context.Context, userID, id string) error {
	goal, err := s.repo.GetSavingsGoal(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteSavingsGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting savings goal: %w", err)
	}

	return nil
}

// Contribute deposits into an active goal. Alongside the contribution record
// a saving transaction lands on the ledger, and the goal auto-completes once
// its target is reached.
func (s *DefaultService) Contribute(
	ctx context.Context,
	userID, goalID string,
	req models.ContributionRequest,
	now time.Time,
) (*models.ContributionResult, error) {
	goal, err := s.activeGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	date, note, err := contributionFields(req, goal, "Contribution to", now)
	if err != nil {
		return nil, err
	}

	contribution := &models.Contribution{
		UserID:        userID,
		SavingsGoalID: goalID,
		Amount:        req.Amount,
		Type:          models.ContributionDeposit,
		Note:          note,
		Date:          date,
	}
	if err := s.repo.CreateContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("error creating contribution: %w", err)
	}

	tx := &models.Transaction{
		UserID:        userID,
		Name:          goal.Name,
		Type:          models.TypeSaving,
		Amount:        req.Amount,
		Category:      goal.Category,
		Note:          note,
		Date:          date,
		SavingsGoalID: &goal.ID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("error creating saving transaction: %w", err)
	}

	goal.SavedAmount += req.Amount
	if goal.SavedAmount >= goal.TargetAmount {
		goal.Status = models.GoalCompleted
	}

	if err := s.repo.UpdateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("error updating savings goal: %w", err)
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)
	return &models.ContributionResult{
		Goal:         goal,
		Contribution: contribution,
		Transaction:  tx,
	}, nil
}

// Withdraw takes money back out of an active goal, bounded by what has been
// saved. The ledger records it as an expense.
func (s *DefaultService) Withdraw(
	ctx context.Context,
	userID, goalID string,
	req models.ContributionRequest,
	now time.Time,
) (*models.ContributionResult, error) {
	goal, err := s.activeGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Amount > goal.SavedAmount {
		return nil, ErrInsufficientSaved
	}

	date, note, err := contributionFields(req, goal, "Withdrawal from", now)
	if err != nil {
		return nil, err
	}

	contribution := &models.Contribution{
		UserID:        userID,
		SavingsGoalID: goalID,
		Amount:        req.Amount,
		Type:          models.ContributionWithdrawal,
		Note:          note,
		Date:          date,
	}
	if err := s.repo.CreateContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("error creating contribution: %w", err)
	}

	tx := &models.Transaction{
		UserID:        userID,
		Name:          goal.Name,
		Type:          models.TypeExpense,
		Amount:        req.Amount,
		Category:      goal.Category,
		Note:          note,
		Date:          date,
		SavingsGoalID: &goal.ID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("error creating expense transaction: %w", err)
	}

	goal.SavedAmount -= req.Amount

	if err := s.repo.UpdateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("error updating savings goal: %w", err)
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)
	return &models.ContributionResult{
		Goal:         goal,
		Contribution: contribution,
		Transaction:  tx,
	}, nil
}

func (s *DefaultService) GetContributions(
	ctx context.Context,
	userID, goalID string,
	page, limit int,
) (*models.ContributionListResponse, error) {
	// Verify goal belongs to user
	goal, err := s.repo.GetSavingsGoal(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return nil, ErrNotFound
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	contributions, err := s.repo.ListContributions(ctx, goalID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("error listing contributions: %w", err)
	}

	total, err := s.repo.CountContributions(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("error counting contributions: %w", err)
	}

	deposits, withdrawals, err := s.repo.SumContributions(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("error summing contributions: %w", err)
	}

	return &models.ContributionListResponse{
		Success: true,
		Summary: models.ContributionSummary{
			TotalContributions: total,
			TotalDeposits:      deposits,
			TotalWithdrawals:   withdrawals,
			NetSaved:           deposits - withdrawals,
		},
		Data: contributions,
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

// DeleteContribution removes a contribution record and reverses its effect
// on the goal. A completed goal dropping back below target becomes active
// again.
func (s *DefaultService) DeleteContribution(
	ctx context.Context,
	userID, goalID, contributionID string,
) (*models.SavingsGoal, error) {
	contribution, err := s.repo.GetContribution(ctx, userID, goalID, contributionID)
	if err != nil {
		return nil, fmt.Errorf("error getting contribution: %w", err)
	}

	if contribution == nil {
		return nil, ErrNotFound
	}

	goal, err := s.repo.GetSavingsGoal(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return nil, ErrNotFound
	}

	if contribution.Type == models.ContributionDeposit {
		goal.SavedAmount -= contribution.Amount
		if goal.SavedAmount < 0 {
			goal.SavedAmount = 0
		}
	} else {
		goal.SavedAmount += contribution.Amount
	}

	if goal.Status == models.GoalCompleted && goal.SavedAmount < goal.TargetAmount {
		goal.Status = models.GoalActive
	}

	if err := s.repo.UpdateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("error updating savings goal: %w", err)
	}

	if err := s.repo.DeleteContribution(ctx, contributionID); err != nil {
		return nil, fmt.Errorf("error deleting contribution: %w", err)
	}

	goal.Progress = goalProgress(goal.SavedAmount, goal.TargetAmount)
	return goal, nil
}

// activeGoal loads an owner-scoped goal and requires it to be active.
func (s *DefaultService) activeGoal(ctx context.Context, userID, goalID string) (*models.SavingsGoal, error) {
	goal, err := s.repo.GetSavingsGoal(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("error getting savings goal: %w", err)
	}

	if goal == nil {
		return nil, ErrNotFound
	}

	if goal.Status != models.GoalActive {
		return nil, ErrGoalNotActive
	}

	return goal, nil
}

func contributionFields(
	req models.ContributionRequest,
	goal *models.SavingsGoal,
	notePrefix string,
	now time.Time,
) (time.Time, string, error) {
	date := dateOnly(now)
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return time.Time{}, "", fmt.Errorf("invalid date: %w", err)
		}
		date = d
	}

	note := req.Note
	if note == "" {
		note = fmt.Sprintf("%s %s", notePrefix, goal.Name)
	}

	return date, note, nil
}
