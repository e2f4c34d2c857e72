package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal entry routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)

		manage := entries.Group("", middleware.RequireCapability(domain.CapManageJournals))
		{
			manage.POST("", h.createEntry)
			manage.PUT("/:id", h.updateEntry)
			manage.DELETE("/:id", h.deleteEntry)
		}
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates an entry header with optional lines in the given period. The period must accept postings and the posting date must fall inside its range.
// @Tags journal
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period does not accept postings"
// @Security BearerAuth
// @Router /accounting/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry, nil))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, lines, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, lines))
}

// listEntries godoc
// @Summary List journal entries in a period
// @Description Returns a page of entries ordered by posting date. Use next_token to fetch the following page.
// @Tags journal
// @Produce json
// @Param period_id query string true "Period ID"
// @Param limit query int false "Page size (default 50)"
// @Param next_token query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periodID := c.Query("period_id")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "period_id query parameter is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if raw := c.Query("next_token"); raw != "" {
		nextToken = &raw
	}

	entries, newToken, err := h.journalService.ListEntries(c.Request.Context(), periodID, limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{
		Entries:   dto.ToListJournalEntryResponse(entries),
		NextToken: newToken,
	})
}

// updateEntry godoc
// @Summary Update a journal entry header
// @Description Updates entry metadata. The period must still accept postings; a change is recorded as a modification so the period needs re-validation.
// @Tags journal
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journal-entries/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, nil))
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Deletes an entry and all of its lines. The period must still accept postings.
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}
