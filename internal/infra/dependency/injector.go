// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budget-analysis/backend/config"
	"github.com/budget-analysis/backend/internal/application/adapter"
	"github.com/budget-analysis/backend/internal/application/usecase/aianalysis"
	"github.com/budget-analysis/backend/internal/application/usecase/budget"
	"github.com/budget-analysis/backend/internal/application/usecase/expense"
	"github.com/budget-analysis/backend/internal/infra/server/router"
	"github.com/budget-analysis/backend/internal/integration/cache"
	"github.com/budget-analysis/backend/internal/integration/email"
	"github.com/budget-analysis/backend/internal/integration/entrypoint/controller"
	"github.com/budget-analysis/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-analysis/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The Redis client is optional; passing nil disables analysis caching. The
// alert notifier is created only when a Resend API key is configured.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	budgetRepo := persistence.NewBudgetRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)

	// Create optional integrations
	var analysisCache adapter.AnalysisCache
	if redisClient != nil {
		analysisCache = cache.NewAnalysisCache(redisClient)
	}

	var alertNotifier adapter.AlertNotifier
	if cfg.Email.ResendAPIKey != "" {
		client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			slog.Warn("Alert notifier initialization failed, continuing without alerts", "error", err)
		} else {
			alertNotifier = client
		}
	}

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, expenseRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, expenseRepo, analysisCache)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, analysisCache)

	// Create expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, budgetRepo, analysisCache)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, budgetRepo, analysisCache)

	// Create analysis use cases
	analyzeBudgetUseCase := aianalysis.NewAnalyzeBudgetUseCase(
		budgetRepo,
		expenseRepo,
		analysisCache,
		alertNotifier,
		cfg.Analysis.CacheTTL,
		cfg.Analysis.AlertRecipient,
	)
	getVelocityUseCase := aianalysis.NewGetVelocityUseCase(budgetRepo, expenseRepo)
	applySuggestionUseCase := aianalysis.NewApplySuggestionUseCase(budgetRepo, expenseRepo, analysisCache)
	detectAnomaliesUseCase := aianalysis.NewDetectAnomaliesUseCase(expenseRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		createBudgetUseCase,
		getBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)

	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		listExpensesUseCase,
		deleteExpenseUseCase,
	)

	analysisController := controller.NewAnalysisController(
		analyzeBudgetUseCase,
		getVelocityUseCase,
		applySuggestionUseCase,
		detectAnomaliesUseCase,
	)

	// Create middleware
	analysisRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.Analysis.RateLimitMaxRequests,
		cfg.Analysis.RateLimitWindow,
	)
	identityMiddleware := middleware.NewIdentityMiddleware()

	// Create router
	r := router.NewRouter(
		healthController,
		budgetController,
		expenseController,
		analysisController,
		analysisRateLimiter,
		identityMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
