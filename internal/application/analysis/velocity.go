package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// CalculateSpendingVelocity derives the daily spending rate for a budget
// from the expenses logged between the period start and now. Unlike
// CalculateBudgetMetrics this is a "so far" window ending at now, not at
// the period end.
func CalculateSpendingVelocity(budget *entity.Budget, expenses []*entity.Expense, now time.Time) entity.SpendingVelocity {
	daysElapsed := atLeastOne(daysBetween(budget.Period.StartDate, now))

	daysRemaining := daysBetween(now, budget.Period.EndDate)
	if daysRemaining.IsNegative() {
		daysRemaining = decimal.Zero
	}

	matched := filterPeriodExpenses(budget, expenses, budget.Period.StartDate, now)
	totalSpent := sumAmounts(expenseAmounts(matched))
	dailyAverage := totalSpent.Div(daysElapsed)

	daysToOverrun := 0
	remaining := budget.Amount.Sub(totalSpent)
	if remaining.IsPositive() && dailyAverage.IsPositive() {
		daysToOverrun = int(remaining.Div(dailyAverage).Floor().IntPart())
	}

	return entity.SpendingVelocity{
		DailyAverage:  dailyAverage,
		DaysElapsed:   daysElapsed,
		DaysRemaining: daysRemaining,
		DaysToOverrun: daysToOverrun,
	}
}
