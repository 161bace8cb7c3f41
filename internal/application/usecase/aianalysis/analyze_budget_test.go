package aianalysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

func newAnalyzeUseCase(
	budgetRepo *fakeBudgetRepository,
	expenseRepo *fakeExpenseRepository,
	cache *fakeAnalysisCache,
	notifier *fakeAlertNotifier,
) *AnalyzeBudgetUseCase {
	// A typed nil fake must become a nil interface for the optional
	// dependency guards to apply.
	var cacheDep adapter.AnalysisCache
	if cache != nil {
		cacheDep = cache
	}
	var notifierDep adapter.AlertNotifier
	if notifier != nil {
		notifierDep = notifier
	}

	uc := NewAnalyzeBudgetUseCase(budgetRepo, expenseRepo, cacheDep, notifierDep, 15*time.Minute, "user@example.com")
	uc.clock = func() time.Time { return fixedNow }
	return uc
}

func TestAnalyzeBudget_ComputesAndCachesAnalysis(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}
	cache := newFakeAnalysisCache()

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, cache, nil)
	output, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if output.Analysis.BudgetID != budget.ID.String() {
		t.Errorf("BudgetID = %q, want %q", output.Analysis.BudgetID, budget.ID.String())
	}
	if !output.Analysis.LastAnalyzedAt.Equal(fixedNow) {
		t.Errorf("LastAnalyzedAt = %v, want %v", output.Analysis.LastAnalyzedAt, fixedNow)
	}
	if len(output.Analysis.Suggestions) != 2 {
		t.Fatalf("len(Suggestions) = %d, want 2", len(output.Analysis.Suggestions))
	}
	if output.Analysis.Suggestions[0].Type != entity.SuggestionTypeAlert {
		t.Errorf("Suggestions[0].Type = %q, want %q", output.Analysis.Suggestions[0].Type, entity.SuggestionTypeAlert)
	}
	if output.Analysis.Suggestions[1].Type != entity.SuggestionTypeIncrease {
		t.Errorf("Suggestions[1].Type = %q, want %q", output.Analysis.Suggestions[1].Type, entity.SuggestionTypeIncrease)
	}
	if output.Analysis.AutoAdjustment != nil {
		t.Errorf("AutoAdjustment = %+v, want nil for a disabled policy", output.Analysis.AutoAdjustment)
	}
	if cache.sets != 1 {
		t.Errorf("cache.sets = %d, want 1", cache.sets)
	}
}

func TestAnalyzeBudget_CacheHitSkipsRecomputation(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	cached := &entity.BudgetAnalysis{
		BudgetID:       budget.ID.String(),
		LastAnalyzedAt: budget.UpdatedAt.Add(time.Minute),
	}
	cache := newFakeAnalysisCache()
	cache.entries[budget.ID] = cached

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, cache, nil)
	output, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if output.Analysis != cached {
		t.Error("expected the cached analysis to be returned")
	}
	if expenseRepo.findCalls != 0 {
		t.Errorf("expenseRepo.findCalls = %d, want 0 on a cache hit", expenseRepo.findCalls)
	}
}

func TestAnalyzeBudget_StaleCacheEntryIsRecomputed(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	// Cached before the budget's last update, so it no longer reflects it.
	cache := newFakeAnalysisCache()
	cache.entries[budget.ID] = &entity.BudgetAnalysis{
		BudgetID:       budget.ID.String(),
		LastAnalyzedAt: budget.UpdatedAt.Add(-time.Hour),
	}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, cache, nil)
	output, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if expenseRepo.findCalls == 0 {
		t.Error("expected a recomputation for a stale cache entry")
	}
	if !output.Analysis.LastAnalyzedAt.Equal(fixedNow) {
		t.Errorf("LastAnalyzedAt = %v, want %v", output.Analysis.LastAnalyzedAt, fixedNow)
	}
}

func TestAnalyzeBudget_RefreshBypassesCache(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	cache := newFakeAnalysisCache()
	cache.entries[budget.ID] = &entity.BudgetAnalysis{
		BudgetID:       budget.ID.String(),
		LastAnalyzedAt: budget.UpdatedAt.Add(time.Minute),
	}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, cache, nil)
	_, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID, Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if expenseRepo.findCalls == 0 {
		t.Error("expected a recomputation when Refresh is set")
	}
	if cache.sets != 1 {
		t.Errorf("cache.sets = %d, want 1", cache.sets)
	}
}

func TestAnalyzeBudget_PersistsAcceptedAutoAdjustment(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budget.AutoAdjust.Enabled = true
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, nil, nil)
	output, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	decision := output.Analysis.AutoAdjustment
	if decision == nil || !decision.Adjusted {
		t.Fatalf("AutoAdjustment = %+v, want an accepted adjustment", decision)
	}
	if !decision.NewAmount.Equal(dec(600)) {
		t.Errorf("NewAmount = %s, want 600", decision.NewAmount)
	}
	if !output.Budget.Amount.Equal(dec(600)) {
		t.Errorf("Budget.Amount = %s, want 600", output.Budget.Amount)
	}
	if output.Budget.AutoAdjust.LastAdjusted == nil || !output.Budget.AutoAdjust.LastAdjusted.Equal(fixedNow) {
		t.Errorf("LastAdjusted = %v, want %v", output.Budget.AutoAdjust.LastAdjusted, fixedNow)
	}
	if budgetRepo.updates != 1 {
		t.Errorf("budgetRepo.updates = %d, want 1", budgetRepo.updates)
	}
}

func TestAnalyzeBudget_SendsHighPriorityAlert(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}
	notifier := &fakeAlertNotifier{}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, nil, notifier)
	_, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("len(notifier.sent) = %d, want 1", len(notifier.sent))
	}
	alert := notifier.sent[0]
	if alert.To != "user@example.com" {
		t.Errorf("To = %q, want %q", alert.To, "user@example.com")
	}
	if alert.BudgetName != budget.Name {
		t.Errorf("BudgetName = %q, want %q", alert.BudgetName, budget.Name)
	}
}

func TestAnalyzeBudget_NotificationsDisabledSuppressesAlert(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budget.Notifications.Enabled = false
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}
	notifier := &fakeAlertNotifier{}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, nil, notifier)
	_, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(notifier.sent) != 0 {
		t.Errorf("len(notifier.sent) = %d, want 0", len(notifier.sent))
	}
}

func TestAnalyzeBudget_NotifierFailureDoesNotFailAnalysis(t *testing.T) {
	userID := uuid.New()
	budget, expenses := riskyFoodBudget(userID)
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}
	notifier := &fakeAlertNotifier{sendErr: errors.New("smtp down")}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, nil, notifier)
	if _, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: userID, BudgetID: budget.ID}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestAnalyzeBudget_BudgetNotFound(t *testing.T) {
	budgetRepo := newFakeBudgetRepository()
	expenseRepo := &fakeExpenseRepository{}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, nil, nil)
	_, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: uuid.New(), BudgetID: uuid.New()})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeBudgetNotFound {
		t.Fatalf("Execute() error = %v, want code %s", err, domainerror.ErrCodeBudgetNotFound)
	}
}

func TestAnalyzeBudget_BudgetOwnedByAnotherUser(t *testing.T) {
	budget, expenses := riskyFoodBudget(uuid.New())
	budgetRepo := newFakeBudgetRepository(budget)
	expenseRepo := &fakeExpenseRepository{expenses: expenses}

	uc := newAnalyzeUseCase(budgetRepo, expenseRepo, nil, nil)
	_, err := uc.Execute(context.Background(), AnalyzeBudgetInput{UserID: uuid.New(), BudgetID: budget.ID})

	var budgetErr *domainerror.BudgetError
	if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeBudgetDoesNotBelongToUser {
		t.Fatalf("Execute() error = %v, want code %s", err, domainerror.ErrCodeBudgetDoesNotBelongToUser)
	}
}
