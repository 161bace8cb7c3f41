// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// RiskTolerance represents a user's appetite for aggressive budget changes.
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// UserPreferences carries optional per-user tuning for suggestion
// generation. A nil SavingsGoal disables the goal-based rule.
type UserPreferences struct {
	RiskTolerance      RiskTolerance
	SavingsGoal        *decimal.Decimal
	PriorityCategories []ExpenseCategory
}
