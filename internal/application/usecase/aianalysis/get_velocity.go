// Package aianalysis contains the budget analysis orchestration use cases.
package aianalysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/application/analysis"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// GetVelocityInput represents the input for a velocity lookup.
type GetVelocityInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetVelocityOutput represents the output of a velocity lookup.
type GetVelocityOutput struct {
	Velocity entity.SpendingVelocity
}

// GetVelocityUseCase exposes the spending velocity of one budget.
type GetVelocityUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	clock       func() time.Time
}

// NewGetVelocityUseCase creates a new GetVelocityUseCase instance.
func NewGetVelocityUseCase(budgetRepo adapter.BudgetRepository, expenseRepo adapter.ExpenseRepository) *GetVelocityUseCase {
	return &GetVelocityUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		clock:       time.Now,
	}
}

// Execute computes the current spending velocity for the budget.
func (uc *GetVelocityUseCase) Execute(ctx context.Context, input GetVelocityInput) (*GetVelocityOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetDoesNotBelongToUser,
			"budget does not belong to user",
			domainerror.ErrBudgetDoesNotBelongToUser,
		)
	}

	var expenses []*entity.Expense
	if budget.Category != nil {
		expenses, err = uc.expenseRepo.FindByUserAndCategory(ctx, input.UserID, *budget.Category)
	} else {
		expenses, err = uc.expenseRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	velocity := analysis.CalculateSpendingVelocity(budget, expenses, uc.clock().UTC())

	return &GetVelocityOutput{Velocity: velocity}, nil
}
