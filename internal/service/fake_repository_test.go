package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nravichan/finance-manager-server/internal/models"
	"github.com/nravichan/finance-manager-server/internal/repository"
)

// fakeRepository is an in-memory Repository for exercising business logic
// without a database. Occurrence uniqueness mirrors the store's partial
// unique index on (user_id, recurring_id, date).
type fakeRepository struct {
	mu            sync.Mutex
	users         map[string]*models.User
	transactions  map[string]*models.Transaction
	rules         map[string]*models.RecurringRule
	budgets       map[string]*models.Budget
	goals         map[string]*models.SavingsGoal
	contributions map[string]*models.Contribution

	cursorWrites []time.Time // every UpdateRuleCursor call, in order
}

var _ repository.Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:         make(map[string]*models.User),
		transactions:  make(map[string]*models.Transaction),
		rules:         make(map[string]*models.RecurringRule),
		budgets:       make(map[string]*models.Budget),
		goals:         make(map[string]*models.SavingsGoal),
		contributions: make(map[string]*models.Contribution),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	cp := *tx
	f.transactions[tx.ID] = &cp
	return nil
}

func (f *fakeRepository) CreateOccurrence(ctx context.Context, tx *models.Transaction) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.transactions {
		if existing.UserID == tx.UserID && existing.RecurringID != nil && tx.RecurringID != nil &&
			*existing.RecurringID == *tx.RecurringID && existing.Date.Equal(tx.Date) {
			return false, nil
		}
	}
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	cp := *tx
	f.transactions[tx.ID] = &cp
	return true, nil
}

func (f *fakeRepository) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tx, ok := f.transactions[id]; ok && tx.UserID == userID {
		cp := *tx
		return &cp, nil
	}
	return nil, nil
}

func matchesFilter(tx *models.Transaction, filter models.TransactionFilter) bool {
	if filter.Type != "" && string(tx.Type) != filter.Type {
		return false
	}
	if filter.Category != "" && tx.Category != filter.Category {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(tx.Name), needle) &&
			!strings.Contains(strings.ToLower(tx.Category), needle) {
			return false
		}
	}
	if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func (f *fakeRepository) ListTransactions(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID && matchesFilter(tx, filter) {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset < 0 {
			offset = 0
		}
		if offset >= len(out) {
			return nil, nil
		}
		end := offset + filter.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	return out, nil
}

func (f *fakeRepository) CountTransactions(ctx context.Context, userID string, filter models.TransactionFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, tx := range f.transactions {
		if tx.UserID == userID && matchesFilter(tx, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *tx
	f.transactions[tx.ID] = &cp
	return nil
}

func (f *fakeRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.transactions, id)
	return nil
}

func (f *fakeRepository) FindOccurrence(ctx context.Context, userID, ruleID string, date time.Time) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tx := range f.transactions {
		if tx.UserID == userID && tx.RecurringID != nil && *tx.RecurringID == ruleID && tx.Date.Equal(date) {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) CreateRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRepository) ListRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RecurringRule
	for _, r := range f.rules {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepository) ListActiveRecurringRules(ctx context.Context, userID string) ([]models.RecurringRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RecurringRule
	for _, r := range f.rules {
		if r.UserID == userID && r.IsActive {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepository) GetRecurringRule(ctx context.Context, userID, id string) (*models.RecurringRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rules[id]; ok && r.UserID == userID {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepository) UpdateRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRepository) DeleteRecurringRule(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rules, id)
	return nil
}

func (f *fakeRepository) UpdateRuleCursor(ctx context.Context, ruleID string, cursor time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rules[ruleID]; ok {
		c := cursor
		r.LastGenerated = &c
	}
	f.cursorWrites = append(f.cursorWrites, cursor)
	return nil
}

func (f *fakeRepository) CreateBudget(ctx context.Context, budget *models.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	cp := *budget
	f.budgets[budget.ID] = &cp
	return nil
}

func (f *fakeRepository) GetBudget(ctx context.Context, userID, id string) (*models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.budgets[id]; ok && b.UserID == userID {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepository) ListBudgetsOverlapping(ctx context.Context, userID string, start, end time.Time) ([]models.Budget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Budget
	for _, b := range f.budgets {
		if b.UserID == userID && !b.StartDate.After(end) && !b.EndDate.Before(start) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepository) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *budget
	f.budgets[budget.ID] = &cp
	return nil
}

func (f *fakeRepository) DeleteBudget(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.budgets, id)
	return nil
}

func (f *fakeRepository) CreateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	cp := *goal
	f.goals[goal.ID] = &cp
	return nil
}

func (f *fakeRepository) ListSavingsGoals(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SavingsGoal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepository) GetSavingsGoal(ctx context.Context, userID, id string) (*models.SavingsGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.goals[id]; ok && g.UserID == userID {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepository) UpdateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *goal
	f.goals[goal.ID] = &cp
	return nil
}

func (f *fakeRepository) DeleteSavingsGoal(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for cid, c := range f.contributions {
		if c.SavingsGoalID == id {
			delete(f.contributions, cid)
		}
	}
	delete(f.goals, id)
	return nil
}

func (f *fakeRepository) CreateContribution(ctx context.Context, c *models.Contribution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	f.contributions[c.ID] = &cp
	return nil
}

func (f *fakeRepository) ListContributions(ctx context.Context, goalID string, limit, offset int) ([]models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Contribution
	for _, c := range f.contributions {
		if c.SavingsGoalID == goalID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		end := offset + limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	return out, nil
}

func (f *fakeRepository) CountContributions(ctx context.Context, goalID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.contributions {
		if c.SavingsGoalID == goalID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) SumContributions(ctx context.Context, goalID string) (float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deposits, withdrawals float64
	for _, c := range f.contributions {
		if c.SavingsGoalID != goalID {
			continue
		}
		switch c.Type {
		case models.ContributionDeposit:
			deposits += c.Amount
		case models.ContributionWithdrawal:
			withdrawals += c.Amount
		}
	}
	return deposits, withdrawals, nil
}

func (f *fakeRepository) GetContribution(ctx context.Context, userID, goalID, contributionID string) (*models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.contributions[contributionID]; ok && c.UserID == userID && c.SavingsGoalID == goalID {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepository) DeleteContribution(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.contributions, id)
	return nil
}
