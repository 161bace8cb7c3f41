package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

type fakeExpenseRepository struct {
	expenses map[uuid.UUID]*entity.Expense
	creates  int
	deletes  int
}

func newFakeExpenseRepository(expenses ...*entity.Expense) *fakeExpenseRepository {
	repo := &fakeExpenseRepository{expenses: make(map[uuid.UUID]*entity.Expense)}
	for _, exp := range expenses {
		repo.expenses[exp.ID] = exp
	}
	return repo
}

func (r *fakeExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	r.creates++
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, ok := r.expenses[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	return expense, nil
}

func (r *fakeExpenseRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, exp := range r.expenses {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepository) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category entity.ExpenseCategory) ([]*entity.Expense, error) {
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
	r.deletes++
	delete(r.expenses, id)
	return nil
}

type fakeBudgetRepository struct {
	budgets map[uuid.UUID]*entity.Budget
	updates int
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

type fakeAnalysisCache struct {
	invalidations int
}

func (c *fakeAnalysisCache) Get(_ context.Context, _ uuid.UUID) (*entity.BudgetAnalysis, error) {
	return nil, nil
}

func (c *fakeAnalysisCache) Set(_ context.Context, _ uuid.UUID, _ *entity.BudgetAnalysis, _ time.Duration) error {
	return nil
}

func (c *fakeAnalysisCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	c.invalidations++
	return nil
}

func juneBudget(userID uuid.UUID, category *entity.ExpenseCategory, spent float64) *entity.Budget {
	budget := entity.NewBudget(userID, "June", category, dec(500), entity.BudgetPeriod{
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	budget.Spent = dec(spent)
	return budget
}
