// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category tag of an expense.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryHealthcare    ExpenseCategory = "healthcare"
	CategoryEducation     ExpenseCategory = "education"
	CategoryTravel        ExpenseCategory = "travel"
	CategoryBusiness      ExpenseCategory = "business"
	CategoryOther         ExpenseCategory = "other"
)

// IsValidExpenseCategory reports whether category is one of the known tags.
func IsValidExpenseCategory(category ExpenseCategory) bool {
	switch category {
	case CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryUtilities, CategoryHealthcare, CategoryEducation, CategoryTravel,
		CategoryBusiness, CategoryOther:
		return true
	}
	return false
}

// Expense represents a single logged expense. Analysis paths treat expenses
// as immutable snapshots and never mutate them.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    ExpenseCategory
	Amount      decimal.Decimal // Always positive
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewExpense creates a new Expense entity.
func NewExpense(
	userID uuid.UUID,
	category ExpenseCategory,
	amount decimal.Decimal,
	date time.Time,
	description string,
) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
