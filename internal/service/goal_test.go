package service

import (
	"context"
	"testing"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGoal(t *testing.T, repo *fakeRepository, goal *models.SavingsGoal) *models.SavingsGoal {
	t.Helper()
	if goal.Status == "" {
		goal.Status = models.GoalActive
	}
	require.NoError(t, repo.CreateSavingsGoal(context.Background(), goal))
	return goal
}

func TestContributeMovesGoalAndLedger(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	goal := seedGoal(t, repo, &models.SavingsGoal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Holiday",
		Category:     "Travel",
		TargetAmount: 1000,
	})

	now := day(2026, time.August, 10)
	result, err := svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 250}, now)
	require.NoError(t, err)

	assert.Equal(t, 250.0, result.Goal.SavedAmount)
	assert.Equal(t, 25, result.Goal.Progress)
	assert.Equal(t, models.GoalActive, result.Goal.Status)
	assert.Equal(t, models.ContributionDeposit, result.Contribution.Type)
	assert.Equal(t, "Contribution to Holiday", result.Contribution.Note)
	assert.Equal(t, day(2026, time.August, 10), result.Contribution.Date)

	// A matching saving transaction lands on the ledger
	require.NotNil(t, result.Transaction)
	assert.Equal(t, models.TypeSaving, result.Transaction.Type)
	assert.Equal(t, "Travel", result.Transaction.Category)
	require.NotNil(t, result.Transaction.SavingsGoalID)
	assert.Equal(t, goal.ID, *result.Transaction.SavingsGoalID)

	txs, err := repo.ListTransactions(context.Background(), "user-1", models.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestContributeAutoCompletes(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	goal := seedGoal(t, repo, &models.SavingsGoal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Laptop",
		TargetAmount: 500,
		SavedAmount:  400,
	})

	result, err := svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 100}, day(2026, time.August, 1))
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, result.Goal.Status)
	assert.Equal(t, 100, result.Goal.Progress)

	// Completed goals reject further contributions
	_, err = svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 10}, day(2026, time.August, 2))
	assert.ErrorIs(t, err, ErrGoalNotActive)
}

func TestWithdrawBoundedBySaved(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	goal := seedGoal(t, repo, &models.SavingsGoal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Car",
		Category:     "Savings",
		TargetAmount: 5000,
		SavedAmount:  300,
	})

	_, err := svc.Withdraw(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 400}, day(2026, time.August, 1))
	assert.ErrorIs(t, err, ErrInsufficientSaved)

	result, err := svc.Withdraw(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 200}, day(2026, time.August, 1))
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Goal.SavedAmount)
	assert.Equal(t, models.ContributionWithdrawal, result.Contribution.Type)
	assert.Equal(t, "Withdrawal from Car", result.Contribution.Note)

	// Withdrawals book as expenses
	require.NotNil(t, result.Transaction)
	assert.Equal(t, models.TypeExpense, result.Transaction.Type)
}

func TestDeleteContributionReversesEffect(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	goal := seedGoal(t, repo, &models.SavingsGoal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Fund",
		TargetAmount: 100,
	})

	result, err := svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 100}, day(2026, time.August, 1))
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, result.Goal.Status)

	// Deleting the deposit reopens the goal
	reverted, err := svc.DeleteContribution(context.Background(), "user-1", goal.ID, result.Contribution.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reverted.SavedAmount)
	assert.Equal(t, models.GoalActive, reverted.Status)

	// The record itself is gone
	_, err = svc.DeleteContribution(context.Background(), "user-1", goal.ID, result.Contribution.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDepositContributionFloorsAtZero(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	goal := seedGoal(t, repo, &models.SavingsGoal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Fund",
		TargetAmount: 1000,
	})

	deposit, err := svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 200}, day(2026, time.August, 1))
	require.NoError(t, err)

	_, err = svc.Withdraw(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 150}, day(2026, time.August, 2))
	require.NoError(t, err)

	// Saved is now 50; removing the 200 deposit clamps at zero rather
	// than going negative
	reverted, err := svc.DeleteContribution(context.Background(), "user-1", goal.ID, deposit.Contribution.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reverted.SavedAmount)
}

func TestGetContributionsSummary(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	goal := seedGoal(t, repo, &models.SavingsGoal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Fund",
		TargetAmount: 1000,
	})

	_, err := svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 300}, day(2026, time.August, 1))
	require.NoError(t, err)
	_, err = svc.Contribute(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 200}, day(2026, time.August, 2))
	require.NoError(t, err)
	_, err = svc.Withdraw(context.Background(), "user-1", goal.ID, models.ContributionRequest{Amount: 100}, day(2026, time.August, 3))
	require.NoError(t, err)

	resp, err := svc.GetContributions(context.Background(), "user-1", goal.ID, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Summary.TotalContributions)
	assert.Equal(t, 500.0, resp.Summary.TotalDeposits)
	assert.Equal(t, 100.0, resp.Summary.TotalWithdrawals)
	assert.Equal(t, 400.0, resp.Summary.NetSaved)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 20, resp.Pagination.Limit)
	assert.Len(t, resp.Data, 3)
}
