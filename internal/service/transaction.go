package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nravichan/finance-manager-server/internal/models"
)

// ListTransactions returns a filtered listing plus its read-time summary.
// The recurring generator runs first so the listing always includes every
// occurrence due as of now.
func (s *DefaultService) ListTransactions(
	ctx context.Context,
	userID string,
	filter models.TransactionFilter,
	now time.Time,
) (*models.TransactionListResponse, error) {
	if err := s.GenerateDueTransactions(ctx, userID, now); err != nil {
		return nil, fmt.Errorf("error generating due transactions: %w", err)
	}

	transactions, err := s.repo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	summary, err := s.transactionSummary(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	resp := &models.TransactionListResponse{
		Success: true,
		Data:    transactions,
		Summary: *summary,
	}

	if filter.Limit > 0 {
		total, err := s.repo.CountTransactions(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("error counting transactions: %w", err)
		}

		page := filter.Page
		if page < 1 {
			page = 1
		}
		resp.Pagination = &models.Pagination{
			Page:  page,
			Limit: filter.Limit,
			Total: total,
			Pages: (total + filter.Limit - 1) / filter.Limit,
		}
	}

	return resp, nil
}

// transactionSummary computes the all-time balance and the current calendar
// month's income, expense and savings figures.
func (s *DefaultService) transactionSummary(
	ctx context.Context,
	userID string,
	now time.Time,
) (*models.TransactionSummary, error) {
	all, err := s.repo.ListTransactions(ctx, userID, models.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing transactions for summary: %w", err)
	}

	monthStart, monthEnd := monthBounds(now)

	var totalIncome, totalExpense float64
	var incomeThisMonth, expenseThisMonth float64
	for _, t := range all {
		switch t.Type {
		case models.TypeIncome:
			totalIncome += t.Amount
			if inRange(t.Date, monthStart, monthEnd) {
				incomeThisMonth += t.Amount
			}
		case models.TypeExpense:
			totalExpense += t.Amount
			if inRange(t.Date, monthStart, monthEnd) {
				expenseThisMonth += t.Amount
			}
		}
	}

	return &models.TransactionSummary{
		CurrentBalance:   totalIncome - totalExpense,
		Savings:          incomeThisMonth - expenseThisMonth,
		IncomeThisMonth:  incomeThisMonth,
		ExpenseThisMonth: expenseThisMonth,
	}, nil
}

func (s *DefaultService) AddTransaction(
	ctx context.Context,
	userID string,
	req models.TransactionRequest,
) (*models.Transaction, error) {
	date, err := transactionDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		UserID:   userID,
		Name:     req.Name,
		Type:     models.TransactionType(req.Type),
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
		Date:     date,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return tx, nil
}

func (s *DefaultService) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}

	if tx == nil {
		return nil, ErrNotFound
	}

	return tx, nil
}

func (s *DefaultService) UpdateTransaction(
	ctx context.Context,
	userID, id string,
	req models.TransactionRequest,
) (*models.Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}

	if tx == nil {
		return nil, ErrNotFound
	}

	date, err := transactionDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx.Name = req.Name
	tx.Type = models.TransactionType(req.Type)
	tx.Amount = req.Amount
	tx.Category = req.Category
	tx.Note = req.Note
	tx.Date = date

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}

	return tx, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, userID, id string) error {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("error getting transaction: %w", err)
	}

	if tx == nil {
		return ErrNotFound
	}

	if err := s.repo.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	return nil
}

// transactionDate resolves an optional request date, defaulting to today.
func transactionDate(s string) (time.Time, error) {
	if s == "" {
		return dateOnly(time.Now()), nil
	}

	date, err := parseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}

	return date, nil
}

// monthBounds returns the first and last calendar day of now's month.
func monthBounds(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
