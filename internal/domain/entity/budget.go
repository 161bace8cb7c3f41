// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustTrigger represents an event class that may trigger an automatic
// budget adjustment.
type AdjustTrigger string

const (
	TriggerSpendingPattern AdjustTrigger = "spending_pattern"
	TriggerIncomeChange    AdjustTrigger = "income_change"
	TriggerSeasonal        AdjustTrigger = "seasonal"
	TriggerGoalChange      AdjustTrigger = "goal_change"
)

// BudgetPeriod represents the time window a budget covers.
// EndDate is strictly after StartDate.
type BudgetPeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// AutoAdjustPolicy controls whether and how far a budget amount may be
// changed without user interaction. MaxIncrease and MaxDecrease are
// percentage ceilings relative to the current amount.
type AutoAdjustPolicy struct {
	Enabled      bool
	MaxIncrease  decimal.Decimal
	MaxDecrease  decimal.Decimal
	Triggers     []AdjustTrigger
	LastAdjusted *time.Time
}

// NotificationSettings controls alert delivery for a budget.
// Thresholds are utilization percentages (e.g. 80, 100).
type NotificationSettings struct {
	Enabled    bool
	Thresholds []int
}

// Budget represents an allocated spending ceiling for a period.
// Category is nil when the budget applies to all categories.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Category      *ExpenseCategory
	Amount        decimal.Decimal // Allocated ceiling, > 0
	Spent         decimal.Decimal // Cumulative actual spend for the current period
	Period        BudgetPeriod
	AutoAdjust    AutoAdjustPolicy
	Notifications NotificationSettings
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(
	userID uuid.UUID,
	name string,
	category *ExpenseCategory,
	amount decimal.Decimal,
	period BudgetPeriod,
) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Category: category,
		Amount:   amount,
		Spent:    decimal.Zero,
		Period:   period,
		AutoAdjust: AutoAdjustPolicy{
			Enabled:     false,
			MaxIncrease: decimal.NewFromInt(20),
			MaxDecrease: decimal.NewFromInt(15),
		},
		Notifications: NotificationSettings{
			Enabled:    true,
			Thresholds: []int{80, 100},
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MatchesCategory reports whether the given expense category falls under
// this budget. A nil budget category matches every expense.
func (b *Budget) MatchesCategory(category ExpenseCategory) bool {
	return b.Category == nil || *b.Category == category
}

// UtilizationPercent returns spent/amount as a rounded percentage.
// Returns 0 when the amount is not positive.
func (b *Budget) UtilizationPercent() int {
	if !b.Amount.IsPositive() {
		return 0
	}
	pct := b.Spent.Div(b.Amount).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
