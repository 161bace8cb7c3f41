// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"
)

// BudgetAnalysis bundles every output of one analysis run over a budget.
// It is a plain value: serialized, cached or rendered by outer layers.
type BudgetAnalysis struct {
	BudgetID           string                `json:"budget_id"`
	Suggestions        []Suggestion          `json:"suggestions"`
	PerformanceMetrics PerformanceMetrics    `json:"performance_metrics"`
	UnusualSpending    UnusualSpendingReport `json:"unusual_spending"`
	AutoAdjustment     *AdjustmentDecision   `json:"auto_adjustment,omitempty"`
	LastAnalyzedAt     time.Time             `json:"last_analyzed_at"`
}
