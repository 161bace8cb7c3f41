// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SuggestionType classifies what a suggestion asks the user to do.
type SuggestionType string

const (
	SuggestionTypeIncrease       SuggestionType = "increase"
	SuggestionTypeDecrease       SuggestionType = "decrease"
	SuggestionTypeOptimize       SuggestionType = "optimize"
	SuggestionTypeAlert          SuggestionType = "alert"
	SuggestionTypeRecommendation SuggestionType = "recommendation"
)

// SuggestionPriority represents the urgency of a suggestion.
type SuggestionPriority string

const (
	PriorityLow    SuggestionPriority = "low"
	PriorityMedium SuggestionPriority = "medium"
	PriorityHigh   SuggestionPriority = "high"
)

// Suggestion is a single piece of budget advice produced by the analysis
// engine. Suggestions are stateless values regenerated on demand; no
// identity persists across regenerations except by position in the list.
type Suggestion struct {
	Type            SuggestionType
	Message         string
	Confidence      int // 0-100
	Reasoning       []string
	SuggestedAmount *decimal.Decimal // Present only for actionable amount changes
	Priority        SuggestionPriority
	Actionable      bool
	GeneratedAt     time.Time
}

// HasSuggestedAmount reports whether the suggestion carries a usable
// replacement budget amount.
func (s *Suggestion) HasSuggestedAmount() bool {
	return s.SuggestedAmount != nil && s.SuggestedAmount.IsPositive()
}

// AdjustmentDecision is the outcome of evaluating a suggestion list against
// a budget's auto-adjust policy. The decider only decides; persisting
// NewAmount is the caller's responsibility.
type AdjustmentDecision struct {
	Adjusted  bool
	NewAmount *decimal.Decimal
	Reason    string
}
