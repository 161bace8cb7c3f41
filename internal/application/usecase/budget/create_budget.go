// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for budget names.
const MaxNameLength = 100

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID    uuid.UUID
	Name      string
	Category  *entity.ExpenseCategory
	Amount    decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, expenseRepo adapter.ExpenseRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
	}
}

// Execute performs the budget creation. The initial Spent value is seeded
// from expenses already logged inside the new budget's period.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateBudgetFields(input.Name, input.Category, input.Amount, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	budget := entity.NewBudget(input.UserID, input.Name, input.Category, input.Amount, entity.BudgetPeriod{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})

	spent, err := uc.expenseRepo.SumByCategoryAndPeriod(ctx, input.UserID, input.Category, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum existing expenses: %w", err)
	}
	budget.Spent = spent

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{Budget: budget}, nil
}

// validateBudgetFields checks the user-supplied budget fields shared by
// the create and update paths.
func validateBudgetFields(name string, category *entity.ExpenseCategory, amount decimal.Decimal, start, end time.Time) error {
	if name == "" || len(name) > MaxNameLength {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			fmt.Sprintf("name is required and must not exceed %d characters", MaxNameLength),
			domainerror.ErrMissingBudgetFields,
		)
	}

	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	if !end.After(start) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period end date must be after start date",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	if category != nil && !entity.IsValidExpenseCategory(*category) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetCategory,
			fmt.Sprintf("unknown category %q", *category),
			domainerror.ErrInvalidBudgetCategory,
		)
	}

	return nil
}
