// Package aianalysis contains the budget analysis orchestration use cases.
package aianalysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/application/analysis"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// ApplySuggestionInput represents the input for applying a suggestion.
// SuggestionIndex addresses the freshly regenerated suggestion list;
// suggestions carry no identity beyond their position.
type ApplySuggestionInput struct {
	UserID          uuid.UUID
	BudgetID        uuid.UUID
	SuggestionIndex int
	Preferences     *entity.UserPreferences
}

// ApplySuggestionOutput represents the output of applying a suggestion.
type ApplySuggestionOutput struct {
	Budget  *entity.Budget
	Applied entity.Suggestion
}

// ApplySuggestionUseCase sets a budget's amount to the suggested amount of
// one actionable suggestion.
type ApplySuggestionUseCase struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	cache       adapter.AnalysisCache // Optional
	clock       func() time.Time
}

// NewApplySuggestionUseCase creates a new ApplySuggestionUseCase instance.
func NewApplySuggestionUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.AnalysisCache,
) *ApplySuggestionUseCase {
	return &ApplySuggestionUseCase{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		clock:       time.Now,
	}
}

// Execute regenerates the suggestion list and applies the indexed suggestion.
func (uc *ApplySuggestionUseCase) Execute(ctx context.Context, input ApplySuggestionInput) (*ApplySuggestionOutput, error) {
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

	expenses, err := uc.expenseRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	now := uc.clock().UTC()
	suggestions := analysis.GenerateSuggestions(budget, expenses, input.Preferences, now)

	if input.SuggestionIndex < 0 || input.SuggestionIndex >= len(suggestions) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeSuggestionNotFound,
			"suggestion index out of range",
			domainerror.ErrSuggestionNotFound,
		)
	}

	suggestion := suggestions[input.SuggestionIndex]
	if !suggestion.Actionable || !suggestion.HasSuggestedAmount() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeSuggestionNotActionable,
			"suggestion carries no applicable amount",
			domainerror.ErrSuggestionNotActionable,
		)
	}

	budget.Amount = *suggestion.SuggestedAmount
	budget.UpdatedAt = now
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	if uc.cache != nil {
		if cacheErr := uc.cache.Invalidate(ctx, budget.ID); cacheErr != nil {
			slog.Warn("Analysis cache invalidation failed", "budget_id", budget.ID, "error", cacheErr)
		}
	}

	return &ApplySuggestionOutput{Budget: budget, Applied: suggestion}, nil
}
