// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// AutoAdjustSettings represents the auto-adjust policy in API payloads.
type AutoAdjustSettings struct {
	Enabled      bool     `json:"enabled"`
	MaxIncrease  *float64 `json:"max_increase,omitempty" binding:"omitempty,gt=0"`
	MaxDecrease  *float64 `json:"max_decrease,omitempty" binding:"omitempty,gt=0"`
	Triggers     []string `json:"triggers,omitempty"`
	LastAdjusted *string  `json:"last_adjusted,omitempty"`
}

// NotificationSettings represents notification preferences in API payloads.
type NotificationSettings struct {
	Enabled    bool  `json:"enabled"`
	Thresholds []int `json:"thresholds,omitempty"`
}

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Category  *string `json:"category,omitempty"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
// Absent fields are left unchanged.
type UpdateBudgetRequest struct {
	Name          *string               `json:"name,omitempty" binding:"omitempty,max=100"`
	Category      *string               `json:"category,omitempty"`
	Amount        *float64              `json:"amount,omitempty" binding:"omitempty,gt=0"`
	StartDate     *string               `json:"start_date,omitempty"`
	EndDate       *string               `json:"end_date,omitempty"`
	IsActive      *bool                 `json:"is_active,omitempty"`
	AutoAdjust    *AutoAdjustSettings   `json:"auto_adjust,omitempty"`
	Notifications *NotificationSettings `json:"notifications,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	Name          string               `json:"name"`
	Category      *string              `json:"category,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	Spent         decimal.Decimal      `json:"spent"`
	Utilization   int                  `json:"utilization_percent"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	AutoAdjust    AutoAdjustSettings   `json:"auto_adjust"`
	Notifications NotificationSettings `json:"notifications"`
	IsActive      bool                 `json:"is_active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	var category *string
	if b.Category != nil {
		cat := string(*b.Category)
		category = &cat
	}

	maxIncrease, _ := b.AutoAdjust.MaxIncrease.Float64()
	maxDecrease, _ := b.AutoAdjust.MaxDecrease.Float64()
	triggers := make([]string, len(b.AutoAdjust.Triggers))
	for i, t := range b.AutoAdjust.Triggers {
		triggers[i] = string(t)
	}
	var lastAdjusted *string
	if b.AutoAdjust.LastAdjusted != nil {
		formatted := b.AutoAdjust.LastAdjusted.Format(time.RFC3339)
		lastAdjusted = &formatted
	}

	return BudgetResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		Name:        b.Name,
		Category:    category,
		Amount:      b.Amount,
		Spent:       b.Spent,
		Utilization: b.UtilizationPercent(),
		StartDate:   b.Period.StartDate.Format("2006-01-02"),
		EndDate:     b.Period.EndDate.Format("2006-01-02"),
		AutoAdjust: AutoAdjustSettings{
			Enabled:      b.AutoAdjust.Enabled,
			MaxIncrease:  &maxIncrease,
			MaxDecrease:  &maxDecrease,
			Triggers:     triggers,
			LastAdjusted: lastAdjusted,
		},
		Notifications: NotificationSettings{
			Enabled:    b.Notifications.Enabled,
			Thresholds: b.Notifications.Thresholds,
		},
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBudgetListResponse converts a list of budgets to a BudgetListResponse DTO.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Budgets: responses}
}

// ToAutoAdjustPolicy converts AutoAdjustSettings to a domain policy.
func (s *AutoAdjustSettings) ToAutoAdjustPolicy() entity.AutoAdjustPolicy {
	policy := entity.AutoAdjustPolicy{
		Enabled:     s.Enabled,
		MaxIncrease: decimal.NewFromInt(20),
		MaxDecrease: decimal.NewFromInt(15),
	}
	if s.MaxIncrease != nil {
		policy.MaxIncrease = decimal.NewFromFloat(*s.MaxIncrease)
	}
	if s.MaxDecrease != nil {
		policy.MaxDecrease = decimal.NewFromFloat(*s.MaxDecrease)
	}
	for _, t := range s.Triggers {
		policy.Triggers = append(policy.Triggers, entity.AdjustTrigger(t))
	}
	return policy
}

// ToNotificationSettings converts NotificationSettings to the domain type.
func (s *NotificationSettings) ToNotificationSettings() entity.NotificationSettings {
	return entity.NotificationSettings{
		Enabled:    s.Enabled,
		Thresholds: s.Thresholds,
	}
}
