package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
)

// journalLineHandler handles HTTP requests for individual debit/credit lines.
type journalLineHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalLineHandler(js portssvc.JournalSvcFacade) *journalLineHandler {
	return &journalLineHandler{journalService: js}
}

// registerJournalLineRoutes registers the standalone line routes the entry
// detail page posts to.
func registerJournalLineRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalLineHandler(journalService)

	lines := rg.Group("/journal-entry-lines")
	{
		lines.GET("/entry/:entryId", h.getLinesByEntry)

		manage := lines.Group("", middleware.RequireCapability(domain.CapManageJournals))
		{
			manage.POST("", h.addLine)
			manage.DELETE("/:id", h.deleteLine)
		}
	}
}

// addLine godoc
// @Summary Add a line to a journal entry
// @Description Appends one debit/credit line. Exactly one side must be a positive amount; the line's account must be postable.
// @Tags journal
// @Accept json
// @Produce json
// @Param line body dto.CreateJournalLineRequest true "Line details"
// @Success 201 {object} dto.JournalLineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period does not accept postings"
// @Security BearerAuth
// @Router /accounting/journal-entry-lines [post]
func (h *journalLineHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if req.EntryID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "journal_entry_id is required"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	line, err := h.journalService.AddLine(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add journal line")
		return
	}

	logger.Info("Journal line added", slog.String("line_id", line.LineID), slog.String("entry_id", line.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalLineResponse(line))
}

// getLinesByEntry godoc
// @Summary List the lines of a journal entry
// @Tags journal
// @Produce json
// @Param entryId path string true "Entry ID"
// @Success 200 {array} dto.JournalLineResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journal-entry-lines/entry/{entryId} [get]
func (h *journalLineHandler) getLinesByEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	lines, err := h.journalService.GetLinesByEntry(c.Request.Context(), c.Param("entryId"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalLineResponse(lines))
}

// deleteLine godoc
// @Summary Delete a journal line
// @Description Removes one line from an entry. The owning period must still accept postings.
// @Tags journal
// @Produce json
// @Param id path string true "Line ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/journal-entry-lines/{id} [delete]
func (h *journalLineHandler) deleteLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteLine(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete journal line")
		return
	}
	c.Status(http.StatusNoContent)
}
