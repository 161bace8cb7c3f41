package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-analysis/backend/internal/application/usecase/aianalysis"
	"github.com/budget-analysis/backend/internal/domain/entity"
	domainerror "github.com/budget-analysis/backend/internal/domain/error"
	"github.com/budget-analysis/backend/internal/integration/entrypoint/dto"
	"github.com/budget-analysis/backend/internal/integration/entrypoint/middleware"
)

// AnalysisController handles budget analysis endpoints.
type AnalysisController struct {
	analyzeUseCase  *aianalysis.AnalyzeBudgetUseCase
	velocityUseCase *aianalysis.GetVelocityUseCase
	applyUseCase    *aianalysis.ApplySuggestionUseCase
	anomaliesUse    *aianalysis.DetectAnomaliesUseCase
}

// NewAnalysisController creates a new analysis controller instance.
func NewAnalysisController(
	analyzeUseCase *aianalysis.AnalyzeBudgetUseCase,
	velocityUseCase *aianalysis.GetVelocityUseCase,
	applyUseCase *aianalysis.ApplySuggestionUseCase,
	anomaliesUse *aianalysis.DetectAnomaliesUseCase,
) *AnalysisController {
	return &AnalysisController{
		analyzeUseCase:  analyzeUseCase,
		velocityUseCase: velocityUseCase,
		applyUseCase:    applyUseCase,
		anomaliesUse:    anomaliesUse,
	}
}

// Analyze handles GET /budgets/:id/analysis requests.
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return
	}

	var query dto.AnalysisQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query parameters: " + err.Error(),
		})
		return
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), aianalysis.AnalyzeBudgetInput{
		UserID:      userID,
		BudgetID:    budgetID,
		Preferences: query.ToPreferences(),
		Refresh:     query.Refresh,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalysisResponse(output.Analysis))
}

// Velocity handles GET /budgets/:id/velocity requests.
func (c *AnalysisController) Velocity(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return
	}

	output, err := c.velocityUseCase.Execute(ctx.Request.Context(), aianalysis.GetVelocityInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVelocityResponse(output.Velocity))
}

// ApplySuggestion handles POST /budgets/:id/suggestions/:index/apply requests.
func (c *AnalysisController) ApplySuggestion(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid suggestion index",
			Code:  string(domainerror.ErrCodeSuggestionNotFound),
		})
		return
	}

	var query dto.AnalysisQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query parameters: " + err.Error(),
		})
		return
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), aianalysis.ApplySuggestionInput{
		UserID:          userID,
		BudgetID:        budgetID,
		SuggestionIndex: index,
		Preferences:     query.ToPreferences(),
	})
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"budget":             dto.ToBudgetResponse(output.Budget),
		"applied_suggestion": dto.ToSuggestionResponse(output.Applied),
	})
}

// Anomalies handles GET /anomalies requests.
func (c *AnalysisController) Anomalies(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	input := aianalysis.DetectAnomaliesInput{UserID: userID}
	if raw := ctx.Query("category"); raw != "" {
		category := entity.ExpenseCategory(raw)
		input.Category = &category
	}

	output, err := c.anomaliesUse.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUnusualSpendingResponse(output.Report))
}

// handleAnalysisError maps domain errors from the analysis pipeline. Both
// budget and expense errors can surface here.
func (c *AnalysisController) handleAnalysisError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(statusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		ctx.JSON(statusCodeForExpenseError(expenseErr.Code), dto.ErrorResponse{
			Error: expenseErr.Message,
			Code:  string(expenseErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
