package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for aggregated budget reporting.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/budget-summary", h.getBudgetSummary)
	}
}

// getBudgetSummary godoc
// @Summary Get the budget summary for a fiscal year
// @Description Aggregates all active allocations: totals, per-department breakdown, exceeded count and the critical list
// @Tags reports
// @Produce  json
// @Param   fiscalYear query int false "Fiscal year (defaults to current year)"
// @Success 200 {object} domain.BudgetSummary
// @Failure 400 {object} map[string]string "Invalid fiscal year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute budget summary"
// @Security BearerAuth
// @Router /reports/budget-summary [get]
func (h *reportingHandler) getBudgetSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fiscalYear := time.Now().UTC().Year()
	if yearStr := c.Query("fiscalYear"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscalYear parameter"})
			return
		}
		fiscalYear = parsed
	}

	summary, err := h.reportingService.Summarize(c.Request.Context(), fiscalYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidFiscalYear) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute budget summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute budget summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
