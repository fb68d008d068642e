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

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService   portssvc.JournalSvcFacade
	reportingService portssvc.ReportingService
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, rs portssvc.ReportingService) *journalHandler {
	return &journalHandler{journalService: js, reportingService: rs}
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, reportingService portssvc.ReportingService) {
	h := newJournalHandler(journalService, reportingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createDraft)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.GET("/:id/balance", h.checkBalance)
		entries.POST("/:id/lines", h.addLine)
		entries.DELETE("/:id/lines/:lineID", h.removeLine)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/cancel", h.cancelEntry)
	}
}

// respondJournalError maps journal service errors to HTTP statuses. The
// lifecycle endpoints share one taxonomy: missing resources are 404, bad
// input is 400, state conflicts (wrong status, double apply) are 409, and
// transient storage failures during the atomic apply are 503 so callers
// know a retry is safe.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrNotBalanced):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error("Storage failure during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary storage failure, please retry"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createDraft godoc
// @Summary Create a draft journal entry
// @Description Creates an entry with zero lines in DRAFT status
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateDraftRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateDraft(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondJournalError(c, logger, err, "create entry")
		return
	}

	logger.Info("Draft entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a filtered, paginated listing ordered by entry date descending then entry number descending
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Filter by status (DRAFT, POSTED, CANCELLED)"
// @Param   dateFrom query string false "Earliest entry date (YYYY-MM-DD)"
// @Param   dateTo query string false "Latest entry date (YYYY-MM-DD)"
// @Param   search query string false "Substring match on entry number or description"
// @Param   limit query int false "Max results per page (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportingService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves an entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// checkBalance godoc
// @Summary Check whether an entry is balanced
// @Description Reports whether the entry's debit total equals its credit total
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to check balance"
// @Security BearerAuth
// @Router /journal-entries/{id}/balance [get]
func (h *journalHandler) checkBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	balanced, err := h.journalService.IsBalanced(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "check balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"balanced": balanced})
}

// addLine godoc
// @Summary Add a line to a draft entry
// @Description Appends a debit or credit line to a draft entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   line body dto.AddLineRequest true "Line details"
// @Success 201 {object} dto.JournalLineResponse
// @Failure 400 {object} map[string]string "Invalid amounts or inactive references"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry, account or department not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to add line"
// @Security BearerAuth
// @Router /journal-entries/{id}/lines [post]
func (h *journalHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	line, err := h.journalService.AddLine(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondJournalError(c, logger, err, "add line")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalLineResponse(line))
}

// removeLine godoc
// @Summary Remove a line from a draft entry
// @Description Removes a line; only draft entries can be edited
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   lineID path string true "Line ID"
// @Success 204 "Line removed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry or line not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to remove line"
// @Security BearerAuth
// @Router /journal-entries/{id}/lines/{lineID} [delete]
func (h *journalHandler) removeLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	lineID := c.Param("lineID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.RemoveLine(c.Request.Context(), entryID, lineID, userID); err != nil {
		respondJournalError(c, logger, err, "remove line")
		return
	}

	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Transitions a balanced draft to POSTED and applies its budget effect atomically
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Entry is empty or not balanced"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or already posted"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Failure 503 {object} map[string]string "Temporary storage failure, retry"
// @Security BearerAuth
// @Router /journal-entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondJournalError(c, logger, err, "post entry")
		return
	}

	logger.Info("Entry posted successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a posted journal entry
// @Description Transitions a posted entry to CANCELLED and reverses its budget effect atomically
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   cancellation body dto.CancelEntryRequest true "Cancellation reason"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Missing cancellation reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted or already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel entry"
// @Failure 503 {object} map[string]string "Temporary storage failure, retry"
// @Security BearerAuth
// @Router /journal-entries/{id}/cancel [post]
func (h *journalHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.CancelEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CancelEntry(c.Request.Context(), entryID, req.Reason, userID)
	if err != nil {
		respondJournalError(c, logger, err, "cancel entry")
		return
	}

	logger.Info("Entry cancelled successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
