package analysis

import (
	"testing"
	"time"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

func TestGenerateSuggestions_OverrunAlertComesFirst(t *testing.T) {
	// 1000 budget with 850 spent, 20 of 30 days elapsed, ten food expenses
	// averaging 85: utilization 85%, daily rate 42.5, remaining 150, so the
	// projected overrun lands within the 7-day alert window.
	start := fixedNow.Add(-days(20))
	end := start.Add(days(30))
	budget := testBudget(entity.CategoryFood, 1000, 850, start, end)

	var expenses []*entity.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses, testExpense(entity.CategoryFood, 85, start.Add(days(2*i)).Add(time.Hour)))
	}

	suggestions := GenerateSuggestions(budget, expenses, nil, fixedNow)

	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	first := suggestions[0]
	if first.Type != entity.SuggestionTypeAlert {
		t.Errorf("expected first suggestion to be an alert, got %s", first.Type)
	}
	if first.Priority != entity.PriorityHigh {
		t.Errorf("expected high priority, got %s", first.Priority)
	}
	if first.Confidence != confidenceOverrunAlert {
		t.Errorf("expected confidence %d, got %d", confidenceOverrunAlert, first.Confidence)
	}
	if first.SuggestedAmount != nil {
		t.Error("alert suggestions carry no suggested amount")
	}
	if !first.GeneratedAt.Equal(fixedNow) {
		t.Errorf("expected generatedAt %s, got %s", fixedNow, first.GeneratedAt)
	}
}

func TestGenerateSuggestions_EmptyPopulation(t *testing.T) {
	start := fixedNow.Add(-days(20))
	end := start.Add(days(30))
	budget := testBudget(entity.CategoryFood, 1000, 0, start, end)

	suggestions := GenerateSuggestions(budget, nil, nil, fixedNow)

	for _, s := range suggestions {
		switch s.Type {
		case entity.SuggestionTypeAlert, entity.SuggestionTypeOptimize,
			entity.SuggestionTypeIncrease, entity.SuggestionTypeDecrease:
			t.Errorf("unexpected %s suggestion for an empty expense population", s.Type)
		}
	}
}

func TestGenerateSuggestions_OptimizationHint(t *testing.T) {
	start := fixedNow.Add(-days(25))
	end := start.Add(days(30))

	t.Run("skipped below three category expenses", func(t *testing.T) {
		budget := testBudget(entity.CategoryFood, 1000, 900, start, end)
		expenses := []*entity.Expense{
			// Dated outside the period so the velocity alert stays quiet.
			testExpense(entity.CategoryFood, 400, start.Add(-days(60))),
			testExpense(entity.CategoryFood, 500, start.Add(-days(50))),
		}

		for _, s := range GenerateSuggestions(budget, expenses, nil, fixedNow) {
			if s.Type == entity.SuggestionTypeOptimize {
				t.Error("optimization hint must be skipped with fewer than 3 category expenses")
			}
		}
	})

	t.Run("emitted when high spenders dominate", func(t *testing.T) {
		budget := testBudget(entity.CategoryFood, 1000, 900, start, end)
		// Equal amounts: every transaction meets the 20th-percentile
		// threshold, well over the 30% share.
		var expenses []*entity.Expense
		for i := 0; i < 6; i++ {
			expenses = append(expenses, testExpense(entity.CategoryFood, 150, start.Add(-days(40+i))))
		}

		var optimize *entity.Suggestion
		for _, s := range GenerateSuggestions(budget, expenses, nil, fixedNow) {
			if s.Type == entity.SuggestionTypeOptimize {
				opt := s
				optimize = &opt
			}
		}
		if optimize == nil {
			t.Fatal("expected an optimization suggestion")
		}
		if optimize.Confidence != confidenceOptimization {
			t.Errorf("expected confidence %d, got %d", confidenceOptimization, optimize.Confidence)
		}
		if optimize.Priority != entity.PriorityMedium {
			t.Errorf("expected medium priority, got %s", optimize.Priority)
		}
	})

	t.Run("skipped at low utilization", func(t *testing.T) {
		budget := testBudget(entity.CategoryFood, 1000, 100, start, end)
		var expenses []*entity.Expense
		for i := 0; i < 6; i++ {
			expenses = append(expenses, testExpense(entity.CategoryFood, 150, start.Add(-days(40+i))))
		}

		for _, s := range GenerateSuggestions(budget, expenses, nil, fixedNow) {
			if s.Type == entity.SuggestionTypeOptimize {
				t.Error("optimization hint must only run above 80% utilization")
			}
		}
	})
}

func TestGenerateSuggestions_GoalBased(t *testing.T) {
	start := fixedNow.Add(-days(20))
	end := start.Add(days(30))
	budget := testBudget(entity.CategoryFood, 1000, 900, start, end)

	t.Run("shortfall capped at ten percent of the budget", func(t *testing.T) {
		goal := dec(500) // currentSavings 100, shortfall 400, cap 100
		prefs := &entity.UserPreferences{
			RiskTolerance: entity.RiskToleranceMedium,
			SavingsGoal:   &goal,
		}

		var found *entity.Suggestion
		for _, s := range GenerateSuggestions(budget, nil, prefs, fixedNow) {
			if s.Type == entity.SuggestionTypeDecrease && s.Confidence == confidenceGoalBased {
				dc := s
				found = &dc
			}
		}
		if found == nil {
			t.Fatal("expected a goal-based decrease suggestion")
		}
		if found.SuggestedAmount == nil || !found.SuggestedAmount.Equal(dec(900)) {
			t.Errorf("expected suggested amount 900 (10%% cap), got %v", found.SuggestedAmount)
		}
	})

	t.Run("no suggestion when the goal is already met", func(t *testing.T) {
		goal := dec(50) // currentSavings 100 covers it
		prefs := &entity.UserPreferences{SavingsGoal: &goal}

		for _, s := range GenerateSuggestions(budget, nil, prefs, fixedNow) {
			if s.Confidence == confidenceGoalBased {
				t.Error("no goal-based suggestion expected when savings cover the goal")
			}
		}
	})

	t.Run("no suggestion without preferences", func(t *testing.T) {
		for _, s := range GenerateSuggestions(budget, nil, nil, fixedNow) {
			if s.Confidence == confidenceGoalBased && s.Type == entity.SuggestionTypeDecrease {
				t.Error("goal-based rule must not run without a savings goal")
			}
		}
	})
}

func TestGenerateSuggestions_TrendBased(t *testing.T) {
	t.Run("increasing trend with projected overrun suggests an increase", func(t *testing.T) {
		// First-half mean 100, second-half mean 115: a 15% rise over the
		// 10% threshold. 430 spent over 20 of 30 days projects 645 against
		// a 500 budget, a 145 overrun.
		start := fixedNow.Add(-days(20))
		end := start.Add(days(30))
		budget := testBudget(entity.CategoryFood, 500, 430, start, end)
		expenses := []*entity.Expense{
			testExpense(entity.CategoryFood, 100, start.Add(days(2))),
			testExpense(entity.CategoryFood, 100, start.Add(days(4))),
			testExpense(entity.CategoryFood, 115, start.Add(days(17))),
			testExpense(entity.CategoryFood, 115, start.Add(days(19))),
		}

		var increase *entity.Suggestion
		for _, s := range GenerateSuggestions(budget, expenses, nil, fixedNow) {
			if s.Type == entity.SuggestionTypeIncrease {
				inc := s
				increase = &inc
			}
		}
		if increase == nil {
			t.Fatal("expected a trend-based increase suggestion")
		}
		if increase.Confidence != confidenceTrendIncrease {
			t.Errorf("expected confidence %d, got %d", confidenceTrendIncrease, increase.Confidence)
		}
		if increase.SuggestedAmount == nil || !increase.SuggestedAmount.Equal(dec(645)) {
			t.Errorf("expected suggested amount 645 (budget plus overrun), got %v", increase.SuggestedAmount)
		}
	})

	t.Run("decreasing trend with low utilization suggests a decrease", func(t *testing.T) {
		start := fixedNow.Add(-days(26))
		end := start.Add(days(30))
		budget := testBudget(entity.CategoryFood, 1000, 200, start, end)
		expenses := []*entity.Expense{
			testExpense(entity.CategoryFood, 100, start.Add(days(2))),
			testExpense(entity.CategoryFood, 30, start.Add(days(22))),
		}

		var decrease *entity.Suggestion
		for _, s := range GenerateSuggestions(budget, expenses, nil, fixedNow) {
			if s.Type == entity.SuggestionTypeDecrease && s.Confidence == confidenceTrendDecrease {
				dc := s
				decrease = &dc
			}
		}
		if decrease == nil {
			t.Fatal("expected a trend-based decrease suggestion")
		}
		if decrease.SuggestedAmount == nil || !decrease.SuggestedAmount.Equal(dec(900)) {
			t.Errorf("expected suggested amount 900, got %v", decrease.SuggestedAmount)
		}
		if decrease.Priority != entity.PriorityLow {
			t.Errorf("expected low priority, got %s", decrease.Priority)
		}
	})
}

func TestSeasonalSuggestion(t *testing.T) {
	// fixedNow falls in June; the rule compares June's historical average
	// against the overall average.
	seasonalMetrics := func(juneAvg, overallAvg float64) entity.PerformanceMetrics {
		metrics := entity.PerformanceMetrics{AverageSpending: dec(overallAvg)}
		for month := 1; month <= 12; month++ {
			avg := dec(overallAvg)
			if month == 6 {
				avg = dec(juneAvg)
			}
			metrics.SeasonalPattern = append(metrics.SeasonalPattern, entity.SeasonalEntry{
				Month:           month,
				AverageSpending: avg,
			})
		}
		return metrics
	}

	start := fixedNow.Add(-days(10))
	end := start.Add(days(30))
	budget := testBudget(entity.CategoryFood, 1000, 300, start, end)

	t.Run("high season recommends an increase", func(t *testing.T) {
		// June average 130 against an overall 100: 30% variance.
		s := seasonalSuggestion(budget, seasonalMetrics(130, 100), fixedNow)
		if s == nil {
			t.Fatal("expected a seasonal suggestion")
		}
		if s.Type != entity.SuggestionTypeRecommendation {
			t.Errorf("expected recommendation, got %s", s.Type)
		}
		if s.Confidence != confidenceSeasonal {
			t.Errorf("expected confidence %d, got %d", confidenceSeasonal, s.Confidence)
		}
		if s.Priority != entity.PriorityLow {
			t.Errorf("expected low priority, got %s", s.Priority)
		}
		if s.SuggestedAmount == nil || !s.SuggestedAmount.Equal(dec(1150)) {
			t.Errorf("expected suggested amount 1150, got %v", s.SuggestedAmount)
		}
	})

	t.Run("low season recommends a cut", func(t *testing.T) {
		// June average 70 against an overall 100: 30% below normal.
		s := seasonalSuggestion(budget, seasonalMetrics(70, 100), fixedNow)
		if s == nil {
			t.Fatal("expected a seasonal suggestion")
		}
		if s.SuggestedAmount == nil || !s.SuggestedAmount.Equal(dec(900)) {
			t.Errorf("expected suggested amount 900, got %v", s.SuggestedAmount)
		}
	})

	t.Run("skipped at the variance threshold", func(t *testing.T) {
		// Exactly 20% variance does not clear the strictly-greater check.
		if s := seasonalSuggestion(budget, seasonalMetrics(120, 100), fixedNow); s != nil {
			t.Errorf("expected no suggestion at 20%% variance, got %s", s.Type)
		}
	})

	t.Run("skipped without spending history", func(t *testing.T) {
		if s := seasonalSuggestion(budget, entity.PerformanceMetrics{}, fixedNow); s != nil {
			t.Errorf("expected no suggestion for a zero overall average, got %s", s.Type)
		}
	})
}

func TestGenerateSuggestions_ZeroAmountBudgetDoesNotPanic(t *testing.T) {
	start := fixedNow.Add(-days(10))
	end := start.Add(days(30))
	budget := testBudget(entity.CategoryFood, 0, 0, start, end)
	expenses := []*entity.Expense{
		testExpense(entity.CategoryFood, 100, start.Add(days(1))),
	}

	// Must degrade to skipped rules, never divide by zero.
	_ = GenerateSuggestions(budget, expenses, nil, fixedNow)
}

func TestGenerateSuggestions_DeterministicForFixedClock(t *testing.T) {
	start := fixedNow.Add(-days(20))
	end := start.Add(days(30))
	budget := testBudget(entity.CategoryFood, 1000, 850, start, end)
	var expenses []*entity.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses, testExpense(entity.CategoryFood, 85, start.Add(days(2*i)).Add(time.Hour)))
	}

	first := GenerateSuggestions(budget, expenses, nil, fixedNow)
	second := GenerateSuggestions(budget, expenses, nil, fixedNow)

	if len(first) != len(second) {
		t.Fatalf("expected identical suggestion counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Message != second[i].Message ||
			first[i].Confidence != second[i].Confidence {
			t.Errorf("suggestion %d differs between runs", i)
		}
	}
}
