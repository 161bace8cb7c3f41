package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// trendThreshold is the relative change between period halves required
// before spending is considered trending rather than stable.
var trendThreshold = decimal.NewFromFloat(0.1)

// CalculateBudgetMetrics derives the point-in-time performance metrics for
// one budget from the full expense population. The caller is responsible
// for scoping expenses to the correct user. Empty inputs degrade to zeroed
// metrics; the function never fails.
func CalculateBudgetMetrics(budget *entity.Budget, expenses []*entity.Expense, now time.Time) entity.PerformanceMetrics {
	matched := filterPeriodExpenses(budget, expenses, budget.Period.StartDate, budget.Period.EndDate)

	totalSpent := sumAmounts(expenseAmounts(matched))
	averageSpending := meanAmount(expenseAmounts(matched))

	spendingTrend := detectTrend(matched, budget.Period)

	// Project the period total from the spend rate observed so far.
	daysElapsed := atLeastOne(daysBetween(budget.Period.StartDate, now))
	dailyRate := totalSpent.Div(daysElapsed)
	totalDays := daysBetween(budget.Period.StartDate, budget.Period.EndDate)
	projectedTotal := dailyRate.Mul(totalDays)

	predictedOverrun := projectedTotal.Sub(budget.Amount)
	if predictedOverrun.IsNegative() {
		predictedOverrun = decimal.Zero
	}

	daysToOverrun := decimal.Zero
	remaining := budget.Amount.Sub(totalSpent)
	if remaining.IsPositive() && dailyRate.IsPositive() {
		daysToOverrun = remaining.Div(dailyRate)
	}

	return entity.PerformanceMetrics{
		AverageSpending:      averageSpending,
		SpendingTrend:        spendingTrend,
		PredictedOverrun:     predictedOverrun,
		DaysToOverrun:        daysToOverrun,
		SeasonalPattern:      SeasonalPattern(expenses, budget.Category),
		ComparisonToPrevious: compareToPreviousPeriod(budget, expenses, totalSpent),
	}
}

// SeasonalPattern buckets expenses by calendar month and returns the mean
// amount per month. The result always holds exactly 12 entries ordered by
// month 1-12; months without expenses carry a zero average. A nil category
// includes all expenses.
func SeasonalPattern(expenses []*entity.Expense, category *entity.ExpenseCategory) []entity.SeasonalEntry {
	buckets := make(map[int][]decimal.Decimal, 12)
	for _, exp := range expenses {
		if category != nil && exp.Category != *category {
			continue
		}
		month := int(exp.Date.Month())
		buckets[month] = append(buckets[month], exp.Amount)
	}

	pattern := make([]entity.SeasonalEntry, 0, 12)
	for month := 1; month <= 12; month++ {
		pattern = append(pattern, entity.SeasonalEntry{
			Month:           month,
			AverageSpending: meanAmount(buckets[month]),
		})
	}
	return pattern
}

// detectTrend splits the period at its temporal midpoint and compares mean
// expense amounts between the halves. An empty half contributes a zero
// mean rather than a division error.
func detectTrend(matched []*entity.Expense, period entity.BudgetPeriod) entity.SpendingTrend {
	midpoint := period.StartDate.Add(period.EndDate.Sub(period.StartDate) / 2)

	var firstHalf, secondHalf []decimal.Decimal
	for _, exp := range matched {
		if !exp.Date.After(midpoint) {
			firstHalf = append(firstHalf, exp.Amount)
		} else {
			secondHalf = append(secondHalf, exp.Amount)
		}
	}

	firstAvg := meanAmount(firstHalf)
	secondAvg := meanAmount(secondHalf)

	if secondAvg.GreaterThan(firstAvg.Mul(one.Add(trendThreshold))) {
		return entity.TrendIncreasing
	}
	if secondAvg.LessThan(firstAvg.Mul(one.Sub(trendThreshold))) {
		return entity.TrendDecreasing
	}
	return entity.TrendStable
}

// compareToPreviousPeriod compares the current period's matched total
// against the window of identical length immediately before the period
// start. Both values are zero when the previous window has no expenses.
func compareToPreviousPeriod(budget *entity.Budget, expenses []*entity.Expense, currentTotal decimal.Decimal) entity.PeriodComparison {
	length := budget.Period.EndDate.Sub(budget.Period.StartDate)
	prevStart := budget.Period.StartDate.Add(-length)
	prevEnd := budget.Period.StartDate

	var prevAmounts []decimal.Decimal
	for _, exp := range expenses {
		if !budget.MatchesCategory(exp.Category) {
			continue
		}
		if exp.Date.Before(prevStart) || !exp.Date.Before(prevEnd) {
			continue
		}
		prevAmounts = append(prevAmounts, exp.Amount)
	}

	if len(prevAmounts) == 0 {
		return entity.PeriodComparison{Amount: decimal.Zero, Percentage: decimal.Zero}
	}

	prevTotal := sumAmounts(prevAmounts)
	delta := currentTotal.Sub(prevTotal)
	return entity.PeriodComparison{
		Amount:     delta,
		Percentage: safeDiv(delta, prevTotal).Mul(hundred),
	}
}

// filterPeriodExpenses returns the expenses matching the budget's category
// whose date falls within [from, to] inclusive.
func filterPeriodExpenses(budget *entity.Budget, expenses []*entity.Expense, from, to time.Time) []*entity.Expense {
	var matched []*entity.Expense
	for _, exp := range expenses {
		if !budget.MatchesCategory(exp.Category) {
			continue
		}
		if exp.Date.Before(from) || exp.Date.After(to) {
			continue
		}
		matched = append(matched, exp)
	}
	return matched
}

// expenseAmounts extracts the amount of each expense.
func expenseAmounts(expenses []*entity.Expense) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(expenses))
	for i, exp := range expenses {
		amounts[i] = exp.Amount
	}
	return amounts
}
