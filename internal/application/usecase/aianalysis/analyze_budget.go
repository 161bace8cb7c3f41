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

// AnalyzeBudgetInput represents the input for a budget analysis run.
type AnalyzeBudgetInput struct {
	UserID      uuid.UUID
	BudgetID    uuid.UUID
	Preferences *entity.UserPreferences
	Refresh     bool // Skip the cache and force recomputation
}

// AnalyzeBudgetOutput represents the output of a budget analysis run.
type AnalyzeBudgetOutput struct {
	Budget   *entity.Budget
	Analysis *entity.BudgetAnalysis
}

// AnalyzeBudgetUseCase runs the full analysis pipeline for one budget:
// performance metrics, suggestions, anomaly detection and the optional
// auto-adjustment. An accepted adjustment is persisted here; the analysis
// engine itself stays side-effect free.
type AnalyzeBudgetUseCase struct {
	budgetRepo     adapter.BudgetRepository
	expenseRepo    adapter.ExpenseRepository
	cache          adapter.AnalysisCache // Optional
	notifier       adapter.AlertNotifier // Optional
	cacheTTL       time.Duration
	alertRecipient string
	clock          func() time.Time
}

// NewAnalyzeBudgetUseCase creates a new AnalyzeBudgetUseCase instance.
// The cache and notifier are optional and may be nil.
func NewAnalyzeBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.AnalysisCache,
	notifier adapter.AlertNotifier,
	cacheTTL time.Duration,
	alertRecipient string,
) *AnalyzeBudgetUseCase {
	return &AnalyzeBudgetUseCase{
		budgetRepo:     budgetRepo,
		expenseRepo:    expenseRepo,
		cache:          cache,
		notifier:       notifier,
		cacheTTL:       cacheTTL,
		alertRecipient: alertRecipient,
		clock:          time.Now,
	}
}

// Execute performs the analysis.
func (uc *AnalyzeBudgetUseCase) Execute(ctx context.Context, input AnalyzeBudgetInput) (*AnalyzeBudgetOutput, error) {
	budget, err := uc.loadOwnedBudget(ctx, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && !input.Refresh {
		cached, cacheErr := uc.cache.Get(ctx, budget.ID)
		if cacheErr != nil {
			slog.Warn("Analysis cache read failed", "budget_id", budget.ID, "error", cacheErr)
		} else if cached != nil && !cached.LastAnalyzedAt.Before(budget.UpdatedAt) {
			return &AnalyzeBudgetOutput{Budget: budget, Analysis: cached}, nil
		}
	}

	expenses, err := uc.expenseRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	now := uc.clock().UTC()
	suggestions := analysis.GenerateSuggestions(budget, expenses, input.Preferences, now)
	metrics := analysis.CalculateBudgetMetrics(budget, expenses, now)
	unusual := analysis.DetectUnusualSpending(expenses, budget.Category, now)

	var decision *entity.AdjustmentDecision
	if budget.AutoAdjust.Enabled {
		d := analysis.AutoAdjustBudget(budget, suggestions)
		decision = &d

		if d.Adjusted {
			budget.Amount = *d.NewAmount
			budget.AutoAdjust.LastAdjusted = &now
			budget.UpdatedAt = now
			if err := uc.budgetRepo.Update(ctx, budget); err != nil {
				return nil, fmt.Errorf("failed to persist auto-adjustment: %w", err)
			}
			slog.Info("Budget auto-adjusted",
				"budget_id", budget.ID,
				"new_amount", d.NewAmount,
				"reason", d.Reason,
			)
		}
	}

	result := &entity.BudgetAnalysis{
		BudgetID:           budget.ID.String(),
		Suggestions:        suggestions,
		PerformanceMetrics: metrics,
		UnusualSpending:    unusual,
		AutoAdjustment:     decision,
		LastAnalyzedAt:     now,
	}

	if uc.cache != nil {
		if cacheErr := uc.cache.Set(ctx, budget.ID, result, uc.cacheTTL); cacheErr != nil {
			slog.Warn("Analysis cache write failed", "budget_id", budget.ID, "error", cacheErr)
		}
	}

	uc.notifyHighPriorityAlert(ctx, budget, suggestions)

	return &AnalyzeBudgetOutput{Budget: budget, Analysis: result}, nil
}

// notifyHighPriorityAlert sends at most one alert notification per run.
// Delivery failures are logged, never surfaced to the caller.
func (uc *AnalyzeBudgetUseCase) notifyHighPriorityAlert(ctx context.Context, budget *entity.Budget, suggestions []entity.Suggestion) {
	if uc.notifier == nil || uc.alertRecipient == "" || !budget.Notifications.Enabled {
		return
	}

	for _, s := range suggestions {
		if s.Type != entity.SuggestionTypeAlert || s.Priority != entity.PriorityHigh {
			continue
		}
		err := uc.notifier.SendBudgetAlert(ctx, adapter.BudgetAlertInput{
			To:         uc.alertRecipient,
			BudgetName: budget.Name,
			Message:    s.Message,
			Reasoning:  s.Reasoning,
		})
		if err != nil {
			slog.Warn("Budget alert delivery failed", "budget_id", budget.ID, "error", err)
		}
		return
	}
}

// loadOwnedBudget fetches a budget and verifies it belongs to the user.
func (uc *AnalyzeBudgetUseCase) loadOwnedBudget(ctx context.Context, userID, budgetID uuid.UUID) (*entity.Budget, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, budgetID)
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
