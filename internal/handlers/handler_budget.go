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
	"github.com/campusbooks/campus_ledger_app/internal/dto"
	"github.com/campusbooks/campus_ledger_app/internal/middleware"
)

// budgetHandler handles HTTP requests related to budget allocations.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budget allocations.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	allocations := rg.Group("/budget-allocations")
	{
		allocations.PUT("", h.upsertAllocation)
		allocations.GET("", h.listAllocations)
		allocations.GET("/:id", h.getAllocation)
		allocations.DELETE("/:id", h.deactivateAllocation)
	}
}

// upsertAllocation godoc
// @Summary Create or update a budget allocation
// @Description Sets the allocated ceiling for a (department, account, fiscal year) key; spent is derived and never set here
// @Tags budget-allocations
// @Accept  json
// @Produce  json
// @Param   allocation body dto.UpsertAllocationRequest true "Allocation details"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} map[string]string "Invalid input, fiscal year or negative amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Department or account not found"
// @Failure 500 {object} map[string]string "Failed to upsert allocation"
// @Security BearerAuth
// @Router /budget-allocations [put]
func (h *budgetHandler) upsertAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertAllocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	allocation, err := h.budgetService.UpsertAllocation(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) ||
			errors.Is(err, apperrors.ErrInvalidAmount) ||
			errors.Is(err, apperrors.ErrInvalidFiscalYear) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert allocation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert allocation"})
		}
		return
	}

	utilization, err := h.budgetService.GetUtilization(c.Request.Context(), allocation.AllocationID)
	if err != nil {
		logger.Error("Failed to compute utilization for allocation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert allocation"})
		return
	}

	logger.Info("Allocation upserted successfully", slog.String("allocation_id", allocation.AllocationID))
	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation, utilization))
}

// getAllocation godoc
// @Summary Get a budget allocation by ID
// @Description Retrieves an allocation with its derived utilization fields
// @Tags budget-allocations
// @Produce  json
// @Param   id path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve allocation"
// @Security BearerAuth
// @Router /budget-allocations/{id} [get]
func (h *budgetHandler) getAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	allocationID := c.Param("id")

	allocation, err := h.budgetService.GetAllocation(c.Request.Context(), allocationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else {
			logger.Error("Failed to get allocation from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve allocation"})
		}
		return
	}

	utilization, err := h.budgetService.GetUtilization(c.Request.Context(), allocationID)
	if err != nil {
		logger.Error("Failed to compute utilization for allocation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve allocation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation, utilization))
}

// listAllocations godoc
// @Summary List budget allocations for a fiscal year
// @Description Retrieves the utilization of every allocation in a fiscal year
// @Tags budget-allocations
// @Produce  json
// @Param   fiscalYear query int false "Fiscal year (defaults to current year)"
// @Success 200 {array} domain.AllocationUtilization
// @Failure 400 {object} map[string]string "Invalid fiscal year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list allocations"
// @Security BearerAuth
// @Router /budget-allocations [get]
func (h *budgetHandler) listAllocations(c *gin.Context) {
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

	utilizations, err := h.budgetService.ListAllocations(c.Request.Context(), fiscalYear)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidFiscalYear) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list allocations from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
		return
	}

	c.JSON(http.StatusOK, utilizations)
}

// deactivateAllocation godoc
// @Summary Deactivate a budget allocation
// @Description Marks an allocation inactive; future postings no longer affect it
// @Tags budget-allocations
// @Produce  json
// @Param   id path string true "Allocation ID"
// @Success 204 "Allocation deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to deactivate allocation"
// @Security BearerAuth
// @Router /budget-allocations/{id} [delete]
func (h *budgetHandler) deactivateAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	allocationID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.DeactivateAllocation(c.Request.Context(), allocationID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else {
			logger.Error("Failed to deactivate allocation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate allocation"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
