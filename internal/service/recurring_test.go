package service

import (
	"context"
	"testing"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRecurringRuleDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	rule, err := svc.AddRecurringRule(context.Background(), "user-1", models.RecurringRuleRequest{
		Name:      "Salary",
		Type:      "income",
		Amount:    3000,
		Category:  "Salary",
		Frequency: "monthly",
		StartDate: "2026-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rule.Interval)
	assert.True(t, rule.IsActive)
	assert.Nil(t, rule.EndDate)
	assert.Nil(t, rule.LastGenerated)
	assert.Equal(t, day(2026, time.January, 1), rule.StartDate)
}

func TestUpdateRecurringRulePreservesCursor(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	rule, err := svc.AddRecurringRule(context.Background(), "user-1", models.RecurringRuleRequest{
		Name:      "Rent",
		Type:      "expense",
		Amount:    1200,
		Category:  "Housing",
		Frequency: "monthly",
		StartDate: "2026-01-01",
	})
	require.NoError(t, err)

	// Run the generator to move the cursor
	require.NoError(t, svc.GenerateDueTransactions(context.Background(), "user-1", day(2026, time.March, 10)))

	inactive := false
	updated, err := svc.UpdateRecurringRule(context.Background(), "user-1", rule.ID, models.RecurringRuleRequest{
		Name:      "Rent increase",
		Type:      "expense",
		Amount:    1300,
		Category:  "Housing",
		Frequency: "monthly",
		StartDate: "2026-01-01",
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, 1300.0, updated.Amount)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.LastGenerated)
	assert.Equal(t, day(2026, time.April, 1), *updated.LastGenerated)
}

func TestDeleteRecurringRuleKeepsLedger(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	rule, err := svc.AddRecurringRule(context.Background(), "user-1", models.RecurringRuleRequest{
		Name:      "Gym",
		Type:      "expense",
		Amount:    35,
		Category:  "Health",
		Frequency: "monthly",
		StartDate: "2026-01-15",
	})
	require.NoError(t, err)

	require.NoError(t, svc.GenerateDueTransactions(context.Background(), "user-1", day(2026, time.February, 20)))
	require.NoError(t, svc.DeleteRecurringRule(context.Background(), "user-1", rule.ID))

	// Already-materialized occurrences survive the rule's deletion
	txs, err := repo.ListTransactions(context.Background(), "user-1", models.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	err = svc.DeleteRecurringRule(context.Background(), "user-1", rule.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
