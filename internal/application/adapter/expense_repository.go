// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByUserID retrieves all expenses for a given user, most recent first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)

	// FindByUserAndCategory retrieves a user's expenses within one category.
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category entity.ExpenseCategory) ([]*entity.Expense, error)

	// SumByCategoryAndPeriod totals a user's spend for a category between two dates.
	// A nil category totals across all categories.
	SumByCategoryAndPeriod(ctx context.Context, userID uuid.UUID, category *entity.ExpenseCategory, from, to time.Time) (decimal.Decimal, error)

	// Delete removes an expense from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
