// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// AnalysisQuery represents the optional query parameters for analysis requests.
type AnalysisQuery struct {
	Refresh            bool     `form:"refresh"`
	RiskTolerance      string   `form:"risk_tolerance" binding:"omitempty,oneof=low medium high"`
	SavingsGoal        *float64 `form:"savings_goal" binding:"omitempty,gt=0"`
	PriorityCategories []string `form:"priority_categories"`
}

// ToPreferences converts the query parameters to domain preferences.
// Returns nil when no preference field is set.
func (q *AnalysisQuery) ToPreferences() *entity.UserPreferences {
	if q.RiskTolerance == "" && q.SavingsGoal == nil && len(q.PriorityCategories) == 0 {
		return nil
	}

	prefs := &entity.UserPreferences{
		RiskTolerance: entity.RiskTolerance(q.RiskTolerance),
	}
	if q.SavingsGoal != nil {
		goal := decimal.NewFromFloat(*q.SavingsGoal)
		prefs.SavingsGoal = &goal
	}
	for _, c := range q.PriorityCategories {
		prefs.PriorityCategories = append(prefs.PriorityCategories, entity.ExpenseCategory(c))
	}
	return prefs
}

// SuggestionResponse represents a single suggestion in API responses.
type SuggestionResponse struct {
	Type            string           `json:"type"`
	Message         string           `json:"message"`
	Confidence      int              `json:"confidence"`
	Reasoning       []string         `json:"reasoning"`
	SuggestedAmount *decimal.Decimal `json:"suggested_amount,omitempty"`
	Priority        string           `json:"priority"`
	Actionable      bool             `json:"actionable"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// SeasonalEntryResponse represents one month of the seasonal pattern.
type SeasonalEntryResponse struct {
	Month           int             `json:"month"`
	AverageSpending decimal.Decimal `json:"average_spending"`
}

// PerformanceMetricsResponse represents budget performance metrics.
type PerformanceMetricsResponse struct {
	AverageSpending   decimal.Decimal         `json:"average_spending"`
	SpendingTrend     string                  `json:"spending_trend"`
	PredictedOverrun  decimal.Decimal         `json:"predicted_overrun"`
	DaysToOverrun     decimal.Decimal         `json:"days_to_overrun"`
	SeasonalPattern   []SeasonalEntryResponse `json:"seasonal_pattern"`
	ComparisonAmount  decimal.Decimal         `json:"comparison_to_previous_amount"`
	ComparisonPercent decimal.Decimal         `json:"comparison_to_previous_percent"`
}

// UnusualSpendingResponse represents the anomaly report.
type UnusualSpendingResponse struct {
	HasUnusualActivity bool     `json:"has_unusual_activity"`
	Alerts             []string `json:"alerts"`
	Confidence         int      `json:"confidence"`
}

// AdjustmentDecisionResponse represents the auto-adjustment outcome.
type AdjustmentDecisionResponse struct {
	Adjusted  bool             `json:"adjusted"`
	NewAmount *decimal.Decimal `json:"new_amount,omitempty"`
	Reason    string           `json:"reason"`
}

// AnalysisResponse represents the full analysis of one budget.
type AnalysisResponse struct {
	BudgetID           string                      `json:"budget_id"`
	Suggestions        []SuggestionResponse        `json:"suggestions"`
	PerformanceMetrics PerformanceMetricsResponse  `json:"performance_metrics"`
	UnusualSpending    UnusualSpendingResponse     `json:"unusual_spending"`
	AutoAdjustment     *AdjustmentDecisionResponse `json:"auto_adjustment,omitempty"`
	LastAnalyzedAt     time.Time                   `json:"last_analyzed_at"`
}

// VelocityResponse represents the spending velocity of one budget.
type VelocityResponse struct {
	DailyAverage  decimal.Decimal `json:"daily_average"`
	DaysElapsed   decimal.Decimal `json:"days_elapsed"`
	DaysRemaining decimal.Decimal `json:"days_remaining"`
	DaysToOverrun int             `json:"days_to_overrun"`
}

// ToSuggestionResponse converts a domain Suggestion to its DTO.
func ToSuggestionResponse(s entity.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		Type:            string(s.Type),
		Message:         s.Message,
		Confidence:      s.Confidence,
		Reasoning:       s.Reasoning,
		SuggestedAmount: s.SuggestedAmount,
		Priority:        string(s.Priority),
		Actionable:      s.Actionable,
		GeneratedAt:     s.GeneratedAt,
	}
}

// ToAnalysisResponse converts a domain BudgetAnalysis to its DTO.
func ToAnalysisResponse(a *entity.BudgetAnalysis) AnalysisResponse {
	suggestions := make([]SuggestionResponse, len(a.Suggestions))
	for i, s := range a.Suggestions {
		suggestions[i] = ToSuggestionResponse(s)
	}

	seasonal := make([]SeasonalEntryResponse, len(a.PerformanceMetrics.SeasonalPattern))
	for i, entry := range a.PerformanceMetrics.SeasonalPattern {
		seasonal[i] = SeasonalEntryResponse{
			Month:           entry.Month,
			AverageSpending: entry.AverageSpending,
		}
	}

	var adjustment *AdjustmentDecisionResponse
	if a.AutoAdjustment != nil {
		adjustment = &AdjustmentDecisionResponse{
			Adjusted:  a.AutoAdjustment.Adjusted,
			NewAmount: a.AutoAdjustment.NewAmount,
			Reason:    a.AutoAdjustment.Reason,
		}
	}

	return AnalysisResponse{
		BudgetID:    a.BudgetID,
		Suggestions: suggestions,
		PerformanceMetrics: PerformanceMetricsResponse{
			AverageSpending:   a.PerformanceMetrics.AverageSpending,
			SpendingTrend:     string(a.PerformanceMetrics.SpendingTrend),
			PredictedOverrun:  a.PerformanceMetrics.PredictedOverrun,
			DaysToOverrun:     a.PerformanceMetrics.DaysToOverrun,
			SeasonalPattern:   seasonal,
			ComparisonAmount:  a.PerformanceMetrics.ComparisonToPrevious.Amount,
			ComparisonPercent: a.PerformanceMetrics.ComparisonToPrevious.Percentage,
		},
		UnusualSpending: UnusualSpendingResponse{
			HasUnusualActivity: a.UnusualSpending.HasUnusualActivity,
			Alerts:             a.UnusualSpending.Alerts,
			Confidence:         a.UnusualSpending.Confidence,
		},
		AutoAdjustment: adjustment,
		LastAnalyzedAt: a.LastAnalyzedAt,
	}
}

// ToVelocityResponse converts a domain SpendingVelocity to its DTO.
func ToVelocityResponse(v entity.SpendingVelocity) VelocityResponse {
	return VelocityResponse{
		DailyAverage:  v.DailyAverage,
		DaysElapsed:   v.DaysElapsed,
		DaysRemaining: v.DaysRemaining,
		DaysToOverrun: v.DaysToOverrun,
	}
}

// ToUnusualSpendingResponse converts a domain report to its DTO.
func ToUnusualSpendingResponse(r entity.UnusualSpendingReport) UnusualSpendingResponse {
	return UnusualSpendingResponse{
		HasUnusualActivity: r.HasUnusualActivity,
		Alerts:             r.Alerts,
		Confidence:         r.Confidence,
	}
}
