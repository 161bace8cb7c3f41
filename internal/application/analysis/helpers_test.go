package analysis

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// fixedNow is the reference clock for all analysis tests: every
// computation is deterministic for a fixed "now".
var fixedNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func testExpense(category entity.ExpenseCategory, amount float64, date time.Time) *entity.Expense {
	return &entity.Expense{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Category: category,
		Amount:   dec(amount),
		Date:     date,
	}
}

func testBudget(category entity.ExpenseCategory, amount, spent float64, start, end time.Time) *entity.Budget {
	cat := category
	return &entity.Budget{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Name:     "test budget",
		Category: &cat,
		Amount:   dec(amount),
		Spent:    dec(spent),
		Period:   entity.BudgetPeriod{StartDate: start, EndDate: end},
	}
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
