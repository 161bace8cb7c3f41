// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// AutoAdjustJSON is the jsonb representation of a budget's auto-adjust policy.
type AutoAdjustJSON struct {
	Enabled      bool       `json:"enabled"`
	MaxIncrease  string     `json:"max_increase"`
	MaxDecrease  string     `json:"max_decrease"`
	Triggers     []string   `json:"triggers,omitempty"`
	LastAdjusted *time.Time `json:"last_adjusted,omitempty"`
}

// NotificationsJSON is the jsonb representation of a budget's notification settings.
type NotificationsJSON struct {
	Enabled    bool  `json:"enabled"`
	Thresholds []int `json:"thresholds,omitempty"`
}

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Category      *string         `gorm:"type:varchar(50);index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Spent         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate     time.Time       `gorm:"not null"`
	EndDate       time.Time       `gorm:"not null"`
	AutoAdjust    string          `gorm:"type:jsonb;not null;default:'{}'"`
	Notifications string          `gorm:"type:jsonb;not null;default:'{}'"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() (*entity.Budget, error) {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var category *entity.ExpenseCategory
	if m.Category != nil {
		cat := entity.ExpenseCategory(*m.Category)
		category = &cat
	}

	autoAdjust, err := autoAdjustFromJSON(m.AutoAdjust)
	if err != nil {
		return nil, err
	}

	var notificationsJSON NotificationsJSON
	if err := json.Unmarshal([]byte(m.Notifications), &notificationsJSON); err != nil {
		return nil, err
	}

	return &entity.Budget{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Category:   category,
		Amount:     m.Amount,
		Spent:      m.Spent,
		Period:     entity.BudgetPeriod{StartDate: m.StartDate, EndDate: m.EndDate},
		AutoAdjust: autoAdjust,
		Notifications: entity.NotificationSettings{
			Enabled:    notificationsJSON.Enabled,
			Thresholds: notificationsJSON.Thresholds,
		},
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}, nil
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) (*BudgetModel, error) {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	var category *string
	if budget.Category != nil {
		cat := string(*budget.Category)
		category = &cat
	}

	autoAdjust, err := autoAdjustToJSON(budget.AutoAdjust)
	if err != nil {
		return nil, err
	}

	notifications, err := json.Marshal(NotificationsJSON{
		Enabled:    budget.Notifications.Enabled,
		Thresholds: budget.Notifications.Thresholds,
	})
	if err != nil {
		return nil, err
	}

	return &BudgetModel{
		ID:            budget.ID,
		UserID:        budget.UserID,
		Name:          budget.Name,
		Category:      category,
		Amount:        budget.Amount,
		Spent:         budget.Spent,
		StartDate:     budget.Period.StartDate,
		EndDate:       budget.Period.EndDate,
		AutoAdjust:    autoAdjust,
		Notifications: string(notifications),
		IsActive:      budget.IsActive,
		CreatedAt:     budget.CreatedAt,
		UpdatedAt:     budget.UpdatedAt,
		DeletedAt:     deletedAt,
	}, nil
}

func autoAdjustToJSON(policy entity.AutoAdjustPolicy) (string, error) {
	triggers := make([]string, len(policy.Triggers))
	for i, t := range policy.Triggers {
		triggers[i] = string(t)
	}

	raw, err := json.Marshal(AutoAdjustJSON{
		Enabled:      policy.Enabled,
		MaxIncrease:  policy.MaxIncrease.String(),
		MaxDecrease:  policy.MaxDecrease.String(),
		Triggers:     triggers,
		LastAdjusted: policy.LastAdjusted,
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func autoAdjustFromJSON(raw string) (entity.AutoAdjustPolicy, error) {
	var parsed AutoAdjustJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return entity.AutoAdjustPolicy{}, err
	}

	maxIncrease := decimal.Zero
	if parsed.MaxIncrease != "" {
		var err error
		maxIncrease, err = decimal.NewFromString(parsed.MaxIncrease)
		if err != nil {
			return entity.AutoAdjustPolicy{}, err
		}
	}
	maxDecrease := decimal.Zero
	if parsed.MaxDecrease != "" {
		var err error
		maxDecrease, err = decimal.NewFromString(parsed.MaxDecrease)
		if err != nil {
			return entity.AutoAdjustPolicy{}, err
		}
	}

	var triggers []entity.AdjustTrigger
	for _, t := range parsed.Triggers {
		triggers = append(triggers, entity.AdjustTrigger(t))
	}

	return entity.AutoAdjustPolicy{
		Enabled:      parsed.Enabled,
		MaxIncrease:  maxIncrease,
		MaxDecrease:  maxDecrease,
		Triggers:     triggers,
		LastAdjusted: parsed.LastAdjusted,
	}, nil
}
