package aianalysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// fixedNow is the reference clock for the use case tests.
var fixedNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

type fakeBudgetRepository struct {
	budgets map[uuid.UUID]*entity.Budget
	updates int
	findErr error
}

func newFakeBudgetRepository(budgets ...*entity.Budget) *fakeBudgetRepository {
	repo := &fakeBudgetRepository{budgets: make(map[uuid.UUID]*entity.Budget)}
	for _, b := range budgets {
		repo.budgets[b.ID] = b
	}
	return repo
}

func (r *fakeBudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	budget, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return budget, nil
}

func (r *fakeBudgetRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepository) FindActiveByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepository) Update(_ context.Context, budget *entity.Budget) error {
	r.updates++
	r.budgets[budget.ID] = budget
	return nil
}

func (r *fakeBudgetRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.budgets, id)
	return nil
}

type fakeExpenseRepository struct {
	expenses  []*entity.Expense
	findCalls int
	findErr   error
}

func (r *fakeExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	r.expenses = append(r.expenses, expense)
	return nil
}

func (r *fakeExpenseRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	for _, exp := range r.expenses {
		if exp.ID == id {
			return exp, nil
		}
	}
	return nil, domainerror.ErrExpenseNotFound
}

func (r *fakeExpenseRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*entity.Expense
	for _, exp := range r.expenses {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepository) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category entity.ExpenseCategory) ([]*entity.Expense, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*entity.Expense
	for _, exp := range r.expenses {
		if exp.UserID == userID && exp.Category == category {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepository) SumByCategoryAndPeriod(_ context.Context, userID uuid.UUID, category *entity.ExpenseCategory, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, exp := range r.expenses {
		if exp.UserID != userID {
			continue
		}
		if category != nil && exp.Category != *category {
			continue
		}
		if exp.Date.Before(from) || exp.Date.After(to) {
			continue
		}
		total = total.Add(exp.Amount)
	}
	return total, nil
}

func (r *fakeExpenseRepository) Delete(_ context.Context, id uuid.UUID) error {
	for i, exp := range r.expenses {
		if exp.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrExpenseNotFound
}

type fakeAnalysisCache struct {
	entries       map[uuid.UUID]*entity.BudgetAnalysis
	sets          int
	invalidations int
	getErr        error
	setErr        error
}

func newFakeAnalysisCache() *fakeAnalysisCache {
	return &fakeAnalysisCache{entries: make(map[uuid.UUID]*entity.BudgetAnalysis)}
}

func (c *fakeAnalysisCache) Get(_ context.Context, budgetID uuid.UUID) (*entity.BudgetAnalysis, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[budgetID], nil
}

func (c *fakeAnalysisCache) Set(_ context.Context, budgetID uuid.UUID, analysis *entity.BudgetAnalysis, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[budgetID] = analysis
	return nil
}

func (c *fakeAnalysisCache) Invalidate(_ context.Context, budgetID uuid.UUID) error {
	c.invalidations++
	delete(c.entries, budgetID)
	return nil
}

type fakeAlertNotifier struct {
	sent    []adapter.BudgetAlertInput
	sendErr error
}

func (n *fakeAlertNotifier) SendBudgetAlert(_ context.Context, input adapter.BudgetAlertInput) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, input)
	return nil
}

func testExpense(userID uuid.UUID, category entity.ExpenseCategory, amount float64, date time.Time) *entity.Expense {
	return &entity.Expense{
		ID:       uuid.New(),
		UserID:   userID,
		Category: category,
		Amount:   dec(amount),
		Date:     date,
	}
}

// riskyFoodBudget builds a food budget whose expense history produces a
// projected overrun alert and an actionable trend-based increase to 600.
func riskyFoodBudget(userID uuid.UUID) (*entity.Budget, []*entity.Expense) {
	cat := entity.CategoryFood
	budget := &entity.Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     "Groceries",
		Category: &cat,
		Amount:   dec(500),
		Spent:    dec(390),
		Period: entity.BudgetPeriod{
			StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		AutoAdjust: entity.AutoAdjustPolicy{
			Enabled:     false,
			MaxIncrease: dec(20),
			MaxDecrease: dec(15),
		},
		Notifications: entity.NotificationSettings{Enabled: true, Thresholds: []int{80, 100}},
		IsActive:      true,
		CreatedAt:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	// 390 over 19.5 elapsed days projects to 600 over the 30-day period,
	// and the second-half amount exceeds the first-half amount by more
	// than the trend threshold.
	expenses := []*entity.Expense{
		testExpense(userID, entity.CategoryFood, 170, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)),
		testExpense(userID, entity.CategoryFood, 220, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)),
	}
	return budget, expenses
}
