// Package cache implements Redis-backed caching for analysis results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/domain/entity"
)

// keyPrefix namespaces analysis entries in Redis.
const keyPrefix = "budget:analysis:"

// analysisCache implements the adapter.AnalysisCache interface on Redis.
type analysisCache struct {
	client *redis.Client
}

// NewAnalysisCache creates a new Redis-backed analysis cache.
func NewAnalysisCache(client *redis.Client) adapter.AnalysisCache {
	return &analysisCache{
		client: client,
	}
}

// Get returns the cached analysis for a budget, or nil on a miss.
func (c *analysisCache) Get(ctx context.Context, budgetID uuid.UUID) (*entity.BudgetAnalysis, error) {
	raw, err := c.client.Get(ctx, cacheKey(budgetID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read analysis cache: %w", err)
	}

	var analysis entity.BudgetAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode cached analysis: %w", err)
	}
	return &analysis, nil
}

// Set stores an analysis for a budget with the given TTL.
func (c *analysisCache) Set(ctx context.Context, budgetID uuid.UUID, analysis *entity.BudgetAnalysis, ttl time.Duration) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(budgetID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write analysis cache: %w", err)
	}
	return nil
}

// Invalidate drops any cached analysis for a budget.
func (c *analysisCache) Invalidate(ctx context.Context, budgetID uuid.UUID) error {
	if err := c.client.Del(ctx, cacheKey(budgetID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate analysis cache: %w", err)
	}
	return nil
}

func cacheKey(budgetID uuid.UUID) string {
	return keyPrefix + budgetID.String()
}
