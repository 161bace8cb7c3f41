package aianalysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

func newVelocityUseCase(budgetRepo *fakeBudgetRepository, expenseRepo *fakeExpenseRepository) *GetVelocityUseCase {
	uc := NewGetVelocityUseCase(budgetRepo, expenseRepo)
	uc.clock = func() time.Time { return fixedNow }
	return uc
}

func TestGetVelocity_ComputesVelocityForCategoryBudget(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	// An expense outside the budget's category must not count.
	expenses = append(expenses, testExpense(userID, entity.CategoryTravel, 999, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	uc := newVelocityUseCase(budgetRepo, expenseRepo)
	output, err := uc.Execute(context.Background(), GetVelocityInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !output.Velocity.DailyAverage.Equal(dec(20)) {
		t.Errorf("DailyAverage = %s, want 20", output.Velocity.DailyAverage)
	}
	if !output.Velocity.DaysElapsed.Equal(dec(19.5)) {
		t.Errorf("DaysElapsed = %s, want 19.5", output.Velocity.DaysElapsed)
	}
	if output.Velocity.DaysToOverrun != 5 {
		t.Errorf("DaysToOverrun = %d, want 5", output.Velocity.DaysToOverrun)
	}
}

func TestGetVelocity_AllCategoryBudgetUsesEveryExpense(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budget.Category = nil
	expenses = append(expenses, testExpense(userID, entity.CategoryTravel, 19.5, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	uc := newVelocityUseCase(budgetRepo, expenseRepo)
	output, err := uc.Execute(context.Background(), GetVelocityInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// (170 + 220 + 19.5) / 19.5 elapsed days.
	if !output.Velocity.DailyAverage.Equal(dec(21)) {
		t.Errorf("DailyAverage = %s, want 21", output.Velocity.DailyAverage)
	}
}

func TestGetVelocity_BudgetNotFound(t *testing.T) {
	budgetRepo := newFakeBudgetRepository()
	expenseRepo := &fakeExpenseRepository{}

	uc := newVelocityUseCase(budgetRepo, expenseRepo)
	_, err := uc.Execute(context.Background(), GetVelocityInput{UserID: uuid.New(), BudgetID: uuid.New()})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeBudgetNotFound {
		t.Fatalf("Execute() error = %v, want code %s", err, domainerror.ErrCodeBudgetNotFound)
	}
}

func TestGetVelocity_BudgetOwnedByAnotherUser(t *testing.T) {
	budget, expenses := riskyFoodBudget(uuid.New())
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	uc := newVelocityUseCase(budgetRepo, expenseRepo)
	_, err := uc.Execute(context.Background(), GetVelocityInput{UserID: uuid.New(), BudgetID: budget.ID})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeBudgetDoesNotBelongToUser {
		t.Fatalf("Execute() error = %v, want code %s", err, domainerror.ErrCodeBudgetDoesNotBelongToUser)
	}
}
