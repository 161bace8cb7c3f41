package analysis

import (
	"sort"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// minAdjustConfidence is the confidence floor below which no automatic
// adjustment is applied regardless of the policy caps.
const minAdjustConfidence = 75

// AutoAdjustBudget decides whether a budget amount should be changed
// automatically based on the generated suggestions and the budget's
// auto-adjust policy. It performs no side effects; persisting the new
// amount and stamping LastAdjusted is the caller's responsibility.
func AutoAdjustBudget(budget *entity.Budget, suggestions []entity.Suggestion) entity.AdjustmentDecision {
	if !budget.AutoAdjust.Enabled {
		return entity.AdjustmentDecision{Adjusted: false}
	}

	var candidates []entity.Suggestion
	for _, s := range suggestions {
		if !s.Actionable || !s.HasSuggestedAmount() {
			continue
		}
		if s.Type != entity.SuggestionTypeIncrease && s.Type != entity.SuggestionTypeDecrease {
			continue
		}
		candidates = append(candidates, s)
	}

	if len(candidates) == 0 {
		return entity.AdjustmentDecision{Adjusted: false}
	}

	// Stable sort keeps list order for equal confidence, so ties go to the
	// earlier rule.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	best := candidates[0]

	if budget.Amount.IsZero() {
		return entity.AdjustmentDecision{Adjusted: false}
	}

	suggested := *best.SuggestedAmount
	changePct := suggested.Sub(budget.Amount).Abs().Div(budget.Amount).Mul(hundred)

	maxChange := budget.AutoAdjust.MaxDecrease
	if best.Type == entity.SuggestionTypeIncrease {
		maxChange = budget.AutoAdjust.MaxIncrease
	}

	if changePct.LessThanOrEqual(maxChange) && best.Confidence >= minAdjustConfidence {
		return entity.AdjustmentDecision{
			Adjusted:  true,
			NewAmount: &suggested,
			Reason:    best.Message,
		}
	}

	return entity.AdjustmentDecision{Adjusted: false}
}
