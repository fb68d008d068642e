package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbooks/campus_ledger_app/internal/apperrors"
	portssvc "github.com/campusbooks/campus_ledger_app/internal/core/ports/services"
	"github.com/campusbooks/campus_ledger_app/internal/dto"
	"github.com/campusbooks/campus_ledger_app/internal/middleware"
)

// departmentHandler handles HTTP requests related to departments.
type departmentHandler struct {
	departmentService portssvc.DepartmentSvcFacade
}

// newDepartmentHandler creates a new departmentHandler.
func newDepartmentHandler(ds portssvc.DepartmentSvcFacade) *departmentHandler {
	return &departmentHandler{departmentService: ds}
}

// registerDepartmentRoutes registers routes related to departments.
func registerDepartmentRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentSvcFacade) {
	h := newDepartmentHandler(departmentService)

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("/:id", h.getDepartment)
		departments.GET("", h.listDepartments)
		departments.DELETE("/:id", h.deactivateDepartment)
	}
}

// createDepartment godoc
// @Summary Create a new department
// @Description Adds a department that journal lines and budgets can reference
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Department code already exists"
// @Failure 500 {object} map[string]string "Failed to create department"
// @Security BearerAuth
// @Router /departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	department, err := h.departmentService.CreateDepartment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create department in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		}
		return
	}

	logger.Info("Department created successfully", slog.String("department_id", department.DepartmentID))
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(department))
}

// getDepartment godoc
// @Summary Get a department by ID
// @Description Retrieves details for a specific department
// @Tags departments
// @Produce  json
// @Param   id path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Department not found"
// @Failure 500 {object} map[string]string "Failed to retrieve department"
// @Security BearerAuth
// @Router /departments/{id} [get]
func (h *departmentHandler) getDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("id")

	department, err := h.departmentService.GetDepartmentByID(c.Request.Context(), departmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			logger.Error("Failed to get department from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve department"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponse(department))
}

// listDepartments godoc
// @Summary List departments
// @Description Retrieves departments ordered by name
// @Tags departments
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated departments"
// @Success 200 {array} dto.DepartmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list departments"
// @Security BearerAuth
// @Router /departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("includeInactive") == "true"

	departments, err := h.departmentService.ListDepartments(c.Request.Context(), includeInactive)
	if err != nil {
		logger.Error("Failed to list departments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list departments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDepartmentResponses(departments))
}

// deactivateDepartment godoc
// @Summary Deactivate a department
// @Description Marks a department inactive; refused while it has active budget allocations
// @Tags departments
// @Produce  json
// @Param   id path string true "Department ID"
// @Success 204 "Department deactivated"
// @Failure 400 {object} map[string]string "Department still has active allocations"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Department not found"
// @Failure 500 {object} map[string]string "Failed to deactivate department"
// @Security BearerAuth
// @Router /departments/{id} [delete]
func (h *departmentHandler) deactivateDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.departmentService.DeactivateDepartment(c.Request.Context(), departmentID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to deactivate department in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate department"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
