// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
)

// UpdateBudgetInput represents the input for budget updates. Nil fields
// are left unchanged.
type UpdateBudgetInput struct {
	UserID        uuid.UUID
	BudgetID      uuid.UUID
	Name          *string
	Category      *entity.ExpenseCategory
	Amount        *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	IsActive      *bool
	AutoAdjust    *entity.AutoAdjustPolicy
	Notifications *entity.NotificationSettings
}

// UpdateBudgetOutput represents the output of budget updates.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	cache       adapter.AnalysisCache // Optional
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.AnalysisCache,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
	}
}

// Execute applies the requested changes to a budget owned by the user.
// A category or period change re-seeds Spent from the matching expenses.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	name := budget.Name
	if input.Name != nil {
		name = *input.Name
	}
	category := budget.Category
	if input.Category != nil {
		category = input.Category
	}
	amount := budget.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}
	start := budget.Period.StartDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := budget.Period.EndDate
	if input.EndDate != nil {
		end = *input.EndDate
	}

	if err := validateBudgetFields(name, category, amount, start, end); err != nil {
		return nil, err
	}

	scopeChanged := input.Category != nil || input.StartDate != nil || input.EndDate != nil

	budget.Name = name
	budget.Category = category
	budget.Amount = amount
	budget.Period = entity.BudgetPeriod{StartDate: start, EndDate: end}
	if input.IsActive != nil {
		budget.IsActive = *input.IsActive
	}
	if input.AutoAdjust != nil {
		budget.AutoAdjust = *input.AutoAdjust
	}
	if input.Notifications != nil {
		budget.Notifications = *input.Notifications
	}

	if scopeChanged {
		spent, err := uc.expenseRepo.SumByCategoryAndPeriod(ctx, input.UserID, budget.Category, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum existing expenses: %w", err)
		}
		budget.Spent = spent
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	uc.invalidateCache(ctx, budget.ID)

	return &UpdateBudgetOutput{Budget: budget}, nil
}

func (uc *UpdateBudgetUseCase) invalidateCache(ctx context.Context, budgetID uuid.UUID) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, budgetID); err != nil {
		slog.Warn("Analysis cache invalidation failed", "budget_id", budgetID, "error", err)
	}
}
