// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 255

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Category    entity.ExpenseCategory
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic. Every budget whose
// category and period cover the new expense gets its Spent counter bumped
// and its cached analysis dropped.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	budgetRepo  adapter.BudgetRepository
	cache       adapter.AnalysisCache // Optional
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	budgetRepo adapter.BudgetRepository,
	cache adapter.AnalysisCache,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		cache:       cache,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(input.Category, input.Amount, input.Description); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(input.UserID, input.Category, input.Amount, input.Date, input.Description)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	if err := applySpentDelta(ctx, uc.budgetRepo, uc.cache, expense, expense.Amount); err != nil {
		return nil, err
	}

	return &CreateExpenseOutput{Expense: expense}, nil
}

// validateExpenseFields checks the user-supplied expense fields.
func validateExpenseFields(category entity.ExpenseCategory, amount decimal.Decimal, description string) error {
	if !entity.IsValidExpenseCategory(category) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			fmt.Sprintf("unknown category %q", category),
			domainerror.ErrInvalidExpenseCategory,
		)
	}

	if !amount.IsPositive() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if len(description) > MaxDescriptionLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseFields,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrMissingExpenseFields,
		)
	}

	return nil
}

// applySpentDelta adds delta to the Spent counter of every budget covering
// the expense and drops the analysis cache entry of each touched budget.
// Shared by the create and delete paths; delete passes a negative delta.
func applySpentDelta(
	ctx context.Context,
	budgetRepo adapter.BudgetRepository,
	cache adapter.AnalysisCache,
	expense *entity.Expense,
	delta decimal.Decimal,
) error {
	budgets, err := budgetRepo.FindByUserID(ctx, expense.UserID)
	if err != nil {
		return fmt.Errorf("failed to load budgets: %w", err)
	}

	now := time.Now().UTC()
	for _, budget := range budgets {
		if !budget.MatchesCategory(expense.Category) {
			continue
		}
		if expense.Date.Before(budget.Period.StartDate) || expense.Date.After(budget.Period.EndDate) {
			continue
		}

		budget.Spent = budget.Spent.Add(delta)
		if budget.Spent.IsNegative() {
			budget.Spent = decimal.Zero
		}
		budget.UpdatedAt = now
		if err := budgetRepo.Update(ctx, budget); err != nil {
			return fmt.Errorf("failed to update budget spent: %w", err)
		}

		if cache != nil {
			if cacheErr := cache.Invalidate(ctx, budget.ID); cacheErr != nil {
				slog.Warn("Analysis cache invalidation failed", "budget_id", budget.ID, "error", cacheErr)
			}
		}
	}

	return nil
}
