package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
)

// Recurring rule CRUD. The generation cursor (lastGenerated) is never
// touched here; it belongs to the generator.
func (s *DefaultService) AddRecurringRule(
	ctx context.Context,
	userID string,
	req models.RecurringRuleRequest,
) (*models.RecurringRule, error) {
	startDate, endDate, err := rulePeriod(req)
	if err != nil {
		return nil, err
	}

	interval := req.Interval
	if interval < 1 {
		interval = 1
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule := &models.RecurringRule{
		UserID:    userID,
		Name:      req.Name,
		Type:      models.TransactionType(req.Type),
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      req.Note,
		Frequency: models.Frequency(req.Frequency),
		Interval:  interval,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  isActive,
	}

	if err := s.repo.CreateRecurringRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("error creating recurring rule: %w", err)
	}

	return rule, nil
}

func (s *DefaultService) ListRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error) {
	rules, err := s.repo.ListRecurringRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing recurring rules: %w", err)
	}

	return rules, nil
}

func (s *DefaultService) GetRecurringRule(ctx context.Context, userID, id string) (*models.RecurringRule, error) {
	rule, err := s.repo.GetRecurringRule(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting recurring rule: %w", err)
	}

	if rule == nil {
		return nil, ErrNotFound
	}

	return rule, nil
}

func (s *DefaultService) UpdateRecurringRule(
	ctx context.Context,
	userID, id string,
	req models.RecurringRuleRequest,
) (*models.RecurringRule, error) {
	rule, err := s.repo.GetRecurringRule(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting recurring rule: %w", err)
	}

	if rule == nil {
		return nil, ErrNotFound
	}

	startDate, endDate, err := rulePeriod(req)
	if err != nil {
		return nil, err
	}

	rule.Name = req.Name
	rule.Type = models.TransactionType(req.Type)
	rule.Amount = req.Amount
	rule.Category = req.Category
	rule.Note = req.Note
	rule.Frequency = models.Frequency(req.Frequency)
	if req.Interval > 0 {
		rule.Interval = req.Interval
	}
	rule.StartDate = startDate
	rule.EndDate = endDate
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateRecurringRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("error updating recurring rule: %w", err)
	}

	return rule, nil
}

// DeleteRecurringRule removes the rule only; transactions it already
// materialized stay on the ledger.
func (s *DefaultService) DeleteRecurringRule(ctx context.Context, userID, id string) error {
	rule, err := s.repo.GetRecurringRule(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("error getting recurring rule: %w", err)
	}

	if rule == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteRecurringRule(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting recurring rule: %w", err)
	}

	return nil
}

func rulePeriod(req models.RecurringRuleRequest) (time.Time, *time.Time, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid start date: %w", err)
	}

	var endDate *time.Time
	if req.EndDate != "" {
		e, err := parseDate(req.EndDate)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("invalid end date: %w", err)
		}
		endDate = &e
	}

	return startDate, endDate, nil
}
