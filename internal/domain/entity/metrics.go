// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// SpendingTrend represents the direction of spending within a period.
type SpendingTrend string

const (
	TrendIncreasing SpendingTrend = "increasing"
	TrendDecreasing SpendingTrend = "decreasing"
	TrendStable     SpendingTrend = "stable"
)

// SeasonalEntry holds the historical average expense amount for one
// calendar month across all years observed.
type SeasonalEntry struct {
	Month           int // 1-12
	AverageSpending decimal.Decimal
}

// PeriodComparison compares the current period's total spend against the
// immediately preceding period of the same length.
type PeriodComparison struct {
	Amount     decimal.Decimal // Current total minus previous total
	Percentage decimal.Decimal // Relative to the previous total; zero if no previous data
}

// PerformanceMetrics is the point-in-time performance picture of one budget
// derived from its matched expense set.
type PerformanceMetrics struct {
	AverageSpending      decimal.Decimal
	SpendingTrend        SpendingTrend
	PredictedOverrun     decimal.Decimal // Projected excess over the budget by period end
	DaysToOverrun        decimal.Decimal // Estimated days until spend reaches the ceiling; 0 if no overrun
	SeasonalPattern      []SeasonalEntry // Always exactly 12 entries, months 1-12 in order
	ComparisonToPrevious PeriodComparison
}

// SpendingVelocity captures the daily spending rate of a budget measured
// from the period start up to now.
type SpendingVelocity struct {
	DailyAverage  decimal.Decimal
	DaysElapsed   decimal.Decimal
	DaysRemaining decimal.Decimal
	DaysToOverrun int
}

// UnusualSpendingReport is the outcome of anomaly detection over an
// expense population.
type UnusualSpendingReport struct {
	HasUnusualActivity bool
	Alerts             []string
	Confidence         int // min(90, 30 per alert)
}
