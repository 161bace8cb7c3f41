// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// GetBudgetInput represents the input for fetching a single budget.
type GetBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetBudgetOutput represents the output of fetching a single budget.
type GetBudgetOutput struct {
	Budget *entity.Budget
}

// GetBudgetUseCase handles single budget retrieval logic.
type GetBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository) *GetBudgetUseCase {
	return &GetBudgetUseCase{budgetRepo: budgetRepo}
}

// Execute fetches one budget owned by the user.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}
	return &GetBudgetOutput{Budget: budget}, nil
}

// findOwnedBudget fetches a budget and verifies ownership. Shared by the
// get, update and delete paths.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, userID, budgetID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	if budget.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetDoesNotBelongToUser,
			"budget does not belong to user",
			domainerror.ErrBudgetDoesNotBelongToUser,
		)
	}
	return budget, nil
}
