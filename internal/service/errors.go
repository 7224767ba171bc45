package service

import "errors"

// Sentinel errors the API layer maps onto HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrGoalNotActive      = errors.New("goal is not active")
	ErrInsufficientSaved  = errors.New("insufficient saved amount")
	ErrCategorySumExceeds = errors.New("sum of category budgets cannot exceed total budget")
)
