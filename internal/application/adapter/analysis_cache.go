// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/domain/entity"
)

// AnalysisCache caches computed budget analyses for a short window so
// repeated requests against an unchanged budget skip recomputation.
// A cache miss is reported as a nil analysis with a nil error.
type AnalysisCache interface {
	// Get returns the cached analysis for a budget, or nil on a miss.
	Get(ctx context.Context, budgetID uuid.UUID) (*entity.BudgetAnalysis, error)

	// Set stores an analysis for a budget with the given TTL.
	Set(ctx context.Context, budgetID uuid.UUID, analysis *entity.BudgetAnalysis, ttl time.Duration) error

	// Invalidate drops any cached analysis for a budget.
	Invalidate(ctx context.Context, budgetID uuid.UUID) error
}
