package budget

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

type fakeBudgetRepository struct {
	budgets map[uuid.UUID]*entity.Budget
	creates int
	updates int
	deletes int
}

func newFakeBudgetRepository(budgets ...*entity.Budget) *fakeBudgetRepository {
	repo := &fakeBudgetRepository{budgets: make(map[uuid.UUID]*entity.Budget)}
	for _, b := range budgets {
		repo.budgets[b.ID] = b
	}
	return repo
}

func (r *fakeBudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	r.creates++
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
	r.deletes++
	delete(r.budgets, id)
	return nil
}

// fakeExpenseSums serves only the sum query the budget use cases issue.
type fakeExpenseSums struct {
	sum   decimal.Decimal
	calls int
}

func (r *fakeExpenseSums) Create(_ context.Context, _ *entity.Expense) error { return nil }

func (r *fakeExpenseSums) FindByID(_ context.Context, _ uuid.UUID) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}

func (r *fakeExpenseSums) FindByUserID(_ context.Context, _ uuid.UUID) ([]*entity.Expense, error) {
	return nil, nil
}

func (r *fakeExpenseSums) FindByUserAndCategory(_ context.Context, _ uuid.UUID, _ entity.ExpenseCategory) ([]*entity.Expense, error) {
	return nil, nil
}

func (r *fakeExpenseSums) SumByCategoryAndPeriod(_ context.Context, _ uuid.UUID, _ *entity.ExpenseCategory, _, _ time.Time) (decimal.Decimal, error) {
	r.calls++
	return r.sum, nil
}

func (r *fakeExpenseSums) Delete(_ context.Context, _ uuid.UUID) error { return nil }

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

func existingBudget(userID uuid.UUID) *entity.Budget {
	cat := entity.CategoryFood
	return entity.NewBudget(userID, "Groceries", &cat, dec(500), entity.BudgetPeriod{
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
}
