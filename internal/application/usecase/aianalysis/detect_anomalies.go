package aianalysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/application/analysis"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
)

// DetectAnomaliesInput represents the input for an anomaly scan.
type DetectAnomaliesInput struct {
	UserID   uuid.UUID
	Category *entity.ExpenseCategory // Restricts the scan when set
}

// DetectAnomaliesOutput represents the output of an anomaly scan.
type DetectAnomaliesOutput struct {
	Report entity.UnusualSpendingReport
}

// DetectAnomaliesUseCase scans a user's expense history for unusual activity.
type DetectAnomaliesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       func() time.Time
}

// NewDetectAnomaliesUseCase creates a new DetectAnomaliesUseCase instance.
func NewDetectAnomaliesUseCase(expenseRepo adapter.ExpenseRepository) *DetectAnomaliesUseCase {
	return &DetectAnomaliesUseCase{
		expenseRepo: expenseRepo,
		clock:       time.Now,
	}
}

// Execute runs anomaly detection over the user's expenses.
func (uc *DetectAnomaliesUseCase) Execute(ctx context.Context, input DetectAnomaliesInput) (*DetectAnomaliesOutput, error) {
	if input.Category != nil && !entity.IsValidExpenseCategory(*input.Category) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			"unknown expense category",
			domainerror.ErrInvalidExpenseCategory,
		)
	}

	expenses, err := uc.expenseRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	report := analysis.DetectUnusualSpending(expenses, input.Category, uc.clock().UTC())

	return &DetectAnomaliesOutput{Report: report}, nil
}
