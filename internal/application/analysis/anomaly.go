package analysis

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

const (
	// minAnomalyPopulation is the smallest expense set worth analyzing;
	// below it the detector always reports no unusual activity.
	minAnomalyPopulation = 5

	// frequencyWindowDays is the lookback window for the frequency check.
	frequencyWindowDays = 7

	// confidencePerAlert scales the report confidence, capped at maxAnomalyConfidence.
	confidencePerAlert   = 30
	maxAnomalyConfidence = 90
)

// highValueMultiplier marks an expense as unusual when it reaches this
// multiple of the population mean.
var highValueMultiplier = decimal.NewFromInt(2)

// frequencyShareThreshold flags frequency anomalies when more than this
// share of the population falls inside the lookback window.
var frequencyShareThreshold = decimal.NewFromFloat(0.5)

// DetectUnusualSpending flags unusually large expenses and unusually high
// recent transaction frequency. A nil category considers all expenses.
// High-value anomalies produce one alert naming the flagged count, the
// largest flagged amount and the population average, followed by a
// frequency alert when more than half the population landed in the last
// seven days.
func DetectUnusualSpending(expenses []*entity.Expense, category *entity.ExpenseCategory, now time.Time) entity.UnusualSpendingReport {
	var relevant []*entity.Expense
	for _, exp := range expenses {
		if category != nil && exp.Category != *category {
			continue
		}
		relevant = append(relevant, exp)
	}

	if len(relevant) < minAnomalyPopulation {
		return entity.UnusualSpendingReport{HasUnusualActivity: false, Alerts: []string{}, Confidence: 0}
	}

	average := meanAmount(expenseAmounts(relevant))
	threshold := average.Mul(highValueMultiplier)

	unusualCount := 0
	largest := decimal.Zero
	for _, exp := range relevant {
		if exp.Amount.GreaterThanOrEqual(threshold) {
			unusualCount++
			if exp.Amount.GreaterThan(largest) {
				largest = exp.Amount
			}
		}
	}

	alerts := []string{}
	if unusualCount > 0 {
		alerts = append(alerts, fmt.Sprintf(
			"%d unusually high expenses detected (largest: $%s, average: $%s)",
			unusualCount, largest.StringFixed(2), average.StringFixed(2),
		))
	}

	recentCount := 0
	for _, exp := range relevant {
		age := daysBetween(exp.Date, now)
		// Future-dated expenses are outside the trailing window.
		if !age.IsNegative() && age.LessThanOrEqual(decimal.NewFromInt(frequencyWindowDays)) {
			recentCount++
		}
	}
	if decimal.NewFromInt(int64(recentCount)).GreaterThan(decimal.NewFromInt(int64(len(relevant))).Mul(frequencyShareThreshold)) {
		alerts = append(alerts, "High spending frequency in the last 7 days")
	}

	confidence := len(alerts) * confidencePerAlert
	if confidence > maxAnomalyConfidence {
		confidence = maxAnomalyConfidence
	}

	return entity.UnusualSpendingReport{
		HasUnusualActivity: len(alerts) > 0,
		Alerts:             alerts,
		Confidence:         confidence,
	}
}
