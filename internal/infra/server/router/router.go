// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-analysis/backend/internal/integration/entrypoint/controller"
	"github.com/budget-analysis/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	budgetController    *controller.BudgetController
	expenseController   *controller.ExpenseController
	analysisController  *controller.AnalysisController
	analysisRateLimiter *middleware.RateLimiter
	identityMiddleware  *middleware.IdentityMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	budgetController *controller.BudgetController,
	expenseController *controller.ExpenseController,
	analysisController *controller.AnalysisController,
	analysisRateLimiter *middleware.RateLimiter,
	identityMiddleware *middleware.IdentityMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		budgetController:    budgetController,
		expenseController:   expenseController,
		analysisController:  analysisController,
		analysisRateLimiter: analysisRateLimiter,
		identityMiddleware:  identityMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Budget routes (require an authenticated identity)
		if r.budgetController != nil && r.identityMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.identityMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.GET("/:id", r.budgetController.Get)
				budgets.PATCH("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)

				// Analysis routes (nested under budgets, throttled per user)
				if r.analysisController != nil {
					analysis := budgets.Group("")
					if r.analysisRateLimiter != nil {
						analysis.Use(r.analysisRateLimiter.Middleware())
					}
					{
						analysis.GET("/:id/analysis", r.analysisController.Analyze)
						analysis.GET("/:id/velocity", r.analysisController.Velocity)
						analysis.POST("/:id/suggestions/:index/apply", r.analysisController.ApplySuggestion)
					}
				}
			}
		}

		// Expense routes (require an authenticated identity)
		if r.expenseController != nil && r.identityMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.identityMiddleware.Authenticate())
			{
				expenses.GET("", r.expenseController.List)
				expenses.POST("", r.expenseController.Create)
				expenses.DELETE("/:id", r.expenseController.Delete)
			}
		}

		// Anomaly detection route (cross-budget, so not nested)
		if r.analysisController != nil && r.identityMiddleware != nil {
			anomalies := v1.Group("/anomalies")
			anomalies.Use(r.identityMiddleware.Authenticate())
			if r.analysisRateLimiter != nil {
				anomalies.Use(r.analysisRateLimiter.Middleware())
			}
			{
				anomalies.GET("", r.analysisController.Anomalies)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
