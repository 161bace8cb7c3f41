package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// Confidence scores per rule. These are heuristic tuning constants, not
// outputs of a statistical model; keep them named so they stay easy to
// retune without touching control flow.
const (
	confidenceOverrunAlert  = 85
	confidenceOptimization  = 75
	confidenceSeasonal      = 65
	confidenceGoalBased     = 70
	confidenceTrendIncrease = 80
	confidenceTrendDecrease = 75
)

// Rule thresholds.
const (
	overrunAlertWindowDays  = 7   // Alert when overrun is projected within this many days
	highUtilizationPercent  = 80  // Optimization rule only runs above this utilization
	lowUtilizationPercent   = 70  // Decreasing trend suggests a cut below this utilization
	minCategoryExpenses     = 3   // Optimization rule needs at least this many expenses
	highSpendRankFraction   = 0.2 // Percentile rank defining the high-spending threshold
	highSpendShareFraction  = 0.3 // Share of high-value transactions that triggers the hint
	seasonalVariancePercent = 20  // Relative deviation from the overall average
)

// Suggested-amount factors.
var (
	seasonalIncreaseFactor = decimal.NewFromFloat(1.15)
	decreaseFactor         = decimal.NewFromFloat(0.9)
	maxGoalReduction       = decimal.NewFromFloat(0.1) // Never cut more than 10% in one step
)

// GenerateSuggestions evaluates the five suggestion rules in fixed order
// and returns whichever produce a result. The output order is the rule
// evaluation order; the list may be empty. Preferences are optional.
// Malformed inputs (e.g. a zero budget amount) degrade to skipped rules,
// never to a panic.
func GenerateSuggestions(
	budget *entity.Budget,
	expenses []*entity.Expense,
	prefs *entity.UserPreferences,
	now time.Time,
) []entity.Suggestion {
	suggestions := make([]entity.Suggestion, 0, 5)
	metrics := CalculateBudgetMetrics(budget, expenses, now)
	velocity := CalculateSpendingVelocity(budget, expenses, now)
	utilization := budget.UtilizationPercent()

	if s := overrunAlertSuggestion(budget, velocity, now); s != nil {
		suggestions = append(suggestions, *s)
	}

	if utilization > highUtilizationPercent {
		if s := optimizationSuggestion(budget, expenses, now); s != nil {
			suggestions = append(suggestions, *s)
		}
	}

	if s := seasonalSuggestion(budget, metrics, now); s != nil {
		suggestions = append(suggestions, *s)
	}

	if prefs != nil && prefs.SavingsGoal != nil {
		if s := goalBasedSuggestion(budget, *prefs.SavingsGoal, now); s != nil {
			suggestions = append(suggestions, *s)
		}
	}

	if s := trendBasedSuggestion(budget, metrics, utilization, now); s != nil {
		suggestions = append(suggestions, *s)
	}

	return suggestions
}

// overrunAlertSuggestion warns when the current spend rate exhausts the
// budget within the alert window.
func overrunAlertSuggestion(budget *entity.Budget, velocity entity.SpendingVelocity, now time.Time) *entity.Suggestion {
	if velocity.DaysToOverrun <= 0 || velocity.DaysToOverrun > overrunAlertWindowDays {
		return nil
	}

	remaining := budget.Amount.Sub(budget.Spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &entity.Suggestion{
		Type: entity.SuggestionTypeAlert,
		Message: fmt.Sprintf(
			"Warning: At current spending rate, you'll exceed your budget in %d days.",
			velocity.DaysToOverrun,
		),
		Confidence: confidenceOverrunAlert,
		Reasoning: []string{
			fmt.Sprintf("Current daily spending: $%s", velocity.DailyAverage.StringFixed(2)),
			fmt.Sprintf("Remaining budget: $%s", remaining.StringFixed(2)),
			fmt.Sprintf("Days until period ends: %d", int(velocity.DaysRemaining.Round(0).IntPart())),
		},
		Priority:    entity.PriorityHigh,
		Actionable:  false,
		GeneratedAt: now,
	}
}

// optimizationSuggestion flags categories where a large share of
// transactions sit at the top of the amount distribution. Considers all
// category expenses, not just the current period.
func optimizationSuggestion(budget *entity.Budget, expenses []*entity.Expense, now time.Time) *entity.Suggestion {
	var amounts []decimal.Decimal
	for _, exp := range expenses {
		if budget.MatchesCategory(exp.Category) {
			amounts = append(amounts, exp.Amount)
		}
	}

	if len(amounts) < minCategoryExpenses {
		return nil
	}

	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].GreaterThan(amounts[j])
	})

	threshold := amounts[int(math.Floor(float64(len(amounts))*highSpendRankFraction))]
	highCount := 0
	for _, a := range amounts {
		if a.GreaterThanOrEqual(threshold) {
			highCount++
		}
	}

	if float64(highCount) <= float64(len(amounts))*highSpendShareFraction {
		return nil
	}

	share := int(math.Round(float64(highCount) / float64(len(amounts)) * 100))

	return &entity.Suggestion{
		Type: entity.SuggestionTypeOptimize,
		Message: fmt.Sprintf(
			"Consider reviewing your %s spending. %d high-value transactions account for a significant portion of your budget.",
			budgetCategoryLabel(budget), highCount,
		),
		Confidence: confidenceOptimization,
		Reasoning: []string{
			fmt.Sprintf("%d transactions above $%s", highCount, threshold.StringFixed(2)),
			fmt.Sprintf("These represent %d%% of transactions", share),
			"Optimizing large expenses can have the biggest impact",
		},
		Priority:    entity.PriorityMedium,
		Actionable:  false,
		GeneratedAt: now,
	}
}

// seasonalSuggestion recommends an adjustment when the current month's
// historical average deviates from the overall average by more than the
// variance threshold.
func seasonalSuggestion(budget *entity.Budget, metrics entity.PerformanceMetrics, now time.Time) *entity.Suggestion {
	if metrics.AverageSpending.IsZero() {
		return nil
	}

	currentMonth := int(now.Month())
	var seasonal *entity.SeasonalEntry
	for i := range metrics.SeasonalPattern {
		if metrics.SeasonalPattern[i].Month == currentMonth {
			seasonal = &metrics.SeasonalPattern[i]
			break
		}
	}
	if seasonal == nil {
		return nil
	}

	variance := seasonal.AverageSpending.Sub(metrics.AverageSpending).Abs()
	variancePct := variance.Div(metrics.AverageSpending).Mul(hundred)
	if variancePct.LessThanOrEqual(decimal.NewFromInt(seasonalVariancePercent)) {
		return nil
	}

	isHighSeason := seasonal.AverageSpending.GreaterThan(metrics.AverageSpending)
	direction, action := "Lower", "optimizing"
	factor := decreaseFactor
	if isHighSeason {
		direction, action = "Higher", "increasing"
		factor = seasonalIncreaseFactor
	}
	suggested := budget.Amount.Mul(factor)

	return &entity.Suggestion{
		Type: entity.SuggestionTypeRecommendation,
		Message: fmt.Sprintf(
			"%s spending typical for this month. Consider %s your %s budget.",
			direction, action, budgetCategoryLabel(budget),
		),
		Confidence: confidenceSeasonal,
		Reasoning: []string{
			fmt.Sprintf("Historical average for this month: $%s", seasonal.AverageSpending.StringFixed(2)),
			fmt.Sprintf("Overall average: $%s", metrics.AverageSpending.StringFixed(2)),
			fmt.Sprintf("%s%% variance from normal", variancePct.StringFixed(1)),
		},
		SuggestedAmount: &suggested,
		Priority:        entity.PriorityLow,
		Actionable:      true,
		GeneratedAt:     now,
	}
}

// goalBasedSuggestion recommends a budget cut when the remaining headroom
// falls short of the user's savings goal, capped at 10% per step.
func goalBasedSuggestion(budget *entity.Budget, savingsGoal decimal.Decimal, now time.Time) *entity.Suggestion {
	currentSavings := budget.Amount.Sub(budget.Spent)
	if currentSavings.IsNegative() {
		currentSavings = decimal.Zero
	}

	shortfall := savingsGoal.Sub(currentSavings)
	if !shortfall.IsPositive() {
		return nil
	}

	reduction := decimal.Min(shortfall, budget.Amount.Mul(maxGoalReduction))
	suggested := budget.Amount.Sub(reduction)

	return &entity.Suggestion{
		Type: entity.SuggestionTypeDecrease,
		Message: fmt.Sprintf(
			"To meet your savings goal, consider reducing this budget by $%s.",
			reduction.StringFixed(2),
		),
		Confidence: confidenceGoalBased,
		Reasoning: []string{
			fmt.Sprintf("Savings goal: $%s", savingsGoal.StringFixed(2)),
			fmt.Sprintf("Current savings potential: $%s", currentSavings.StringFixed(2)),
			fmt.Sprintf("Shortfall: $%s", shortfall.StringFixed(2)),
		},
		SuggestedAmount: &suggested,
		Priority:        entity.PriorityMedium,
		Actionable:      true,
		GeneratedAt:     now,
	}
}

// trendBasedSuggestion reacts to the detected spending trend: a rising
// trend with a projected overrun suggests an increase, a falling trend
// with low utilization suggests a decrease.
func trendBasedSuggestion(budget *entity.Budget, metrics entity.PerformanceMetrics, utilization int, now time.Time) *entity.Suggestion {
	if metrics.SpendingTrend == entity.TrendIncreasing && metrics.PredictedOverrun.IsPositive() {
		suggested := budget.Amount.Add(metrics.PredictedOverrun)

		return &entity.Suggestion{
			Type: entity.SuggestionTypeIncrease,
			Message: fmt.Sprintf(
				"Your %s spending is trending upward. Consider increasing the budget by $%s to avoid overruns.",
				budgetCategoryLabel(budget), metrics.PredictedOverrun.StringFixed(2),
			),
			Confidence: confidenceTrendIncrease,
			Reasoning: []string{
				"Spending trend is increasing",
				fmt.Sprintf("Predicted overrun: $%s", metrics.PredictedOverrun.StringFixed(2)),
				"Proactive adjustment can prevent budget stress",
			},
			SuggestedAmount: &suggested,
			Priority:        entity.PriorityMedium,
			Actionable:      true,
			GeneratedAt:     now,
		}
	}

	if metrics.SpendingTrend == entity.TrendDecreasing && utilization < lowUtilizationPercent {
		reduction := budget.Amount.Sub(budget.Amount.Mul(decreaseFactor))
		suggested := budget.Amount.Mul(decreaseFactor)

		return &entity.Suggestion{
			Type: entity.SuggestionTypeDecrease,
			Message: fmt.Sprintf(
				"Your %s spending is decreasing. You could reduce this budget by $%s and allocate funds elsewhere.",
				budgetCategoryLabel(budget), reduction.StringFixed(2),
			),
			Confidence: confidenceTrendDecrease,
			Reasoning: []string{
				"Spending trend is decreasing",
				fmt.Sprintf("Current utilization: %d%%", utilization),
				"Funds could be better allocated to other categories",
			},
			SuggestedAmount: &suggested,
			Priority:        entity.PriorityLow,
			Actionable:      true,
			GeneratedAt:     now,
		}
	}

	return nil
}

// budgetCategoryLabel returns the category tag for messages, falling back
// to a generic label for all-category budgets.
func budgetCategoryLabel(budget *entity.Budget) string {
	if budget.Category == nil {
		return "overall"
	}
	return string(*budget.Category)
}
