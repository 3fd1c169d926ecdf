package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
)

// budgetHandler handles HTTP requests for budget plan snapshots.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budget plans.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.PUT("", h.savePlan)
		budgets.GET("/:year", h.listPlans)
		budgets.GET("/:year/:scenario", h.getPlan)
	}
}

func (h *budgetHandler) savePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveBudgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	plan, err := h.budgetService.SavePlan(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to save budget plan")
		return
	}

	logger.Info("Budget plan saved",
		slog.Int("year", plan.Year),
		slog.String("scenario", plan.Scenario),
		slog.Int("items", len(plan.Items)))
	c.JSON(http.StatusOK, dto.ToBudgetPlanResponse(plan))
}

func (h *budgetHandler) getPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	scenario := c.Param("scenario")

	plan, err := h.budgetService.GetPlan(c.Request.Context(), year, scenario)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve budget plan")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetPlanResponse(plan))
}

func (h *budgetHandler) listPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	plans, err := h.budgetService.ListPlans(c.Request.Context(), year)
	if err != nil {
		respondError(c, logger, err, "Failed to list budget plans")
		return
	}

	responses := make([]dto.BudgetPlanResponse, len(plans))
	for i := range plans {
		responses[i] = dto.ToBudgetPlanResponse(&plans[i])
	}
	c.JSON(http.StatusOK, gin.H{"plans": responses})
}
