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

// periodHandler handles HTTP requests related to accounting periods and
// their lifecycle.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// RegisterPeriodRoutes registers period CRUD and lifecycle routes. The
// administrative status override is ADMIN-only.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.GET("/:id", h.getPeriod)
		periods.GET("/:id/balances", h.getBalanceReport)

		manage := periods.Group("", middleware.RequireCapability(domain.CapManagePeriodsDef))
		{
			manage.POST("", h.createPeriod)
			manage.PUT("/:id", h.updatePeriod)
			manage.DELETE("/:id", h.deletePeriod)
		}

		lifecycle := periods.Group("", middleware.RequireCapability(domain.CapRunLifecycle))
		{
			lifecycle.POST("/:id/validate", h.validatePeriod)
			lifecycle.POST("/:id/calculate", h.calculatePeriod)
			lifecycle.POST("/:id/lock", h.lockPeriod)
		}

		periods.PATCH("/:id/status", middleware.RequireCapability(domain.CapOverrideStatus), h.changePeriodStatus)
	}
}

// createPeriod godoc
// @Summary Create a new accounting period
// @Description Creates a period. Start must not be after end, and the date range must not overlap an existing period.
// @Tags periods
// @Accept json
// @Produce json
// @Param period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create period")
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID), slog.String("period_name", period.PeriodName))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a period by ID
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/periods/{id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List all accounting periods
// @Tags periods
// @Produce json
// @Success 200 {array} dto.PeriodResponse
// @Security BearerAuth
// @Router /accounting/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodResponse(periods))
}

// updatePeriod godoc
// @Summary Update a period
// @Description Renames a period or adjusts its date range. Rejected while the period is locked or mid-lifecycle.
// @Tags periods
// @Accept json
// @Produce json
// @Param id path string true "Period ID"
// @Param period body dto.UpdatePeriodRequest true "Fields to update"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/periods/{id} [put]
func (h *periodHandler) updatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// deletePeriod godoc
// @Summary Delete a period
// @Description Deletes a period that has no journal entries. Fails with 409 otherwise.
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/periods/{id} [delete]
func (h *periodHandler) deletePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.periodService.DeletePeriod(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete period")
		return
	}
	c.Status(http.StatusNoContent)
}

// validatePeriod godoc
// @Summary Validate a period
// @Description Scans every journal entry in the period for consistency. Violations come back in the payload, not as an error; a clean scan clears the dirty flag.
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.ValidationResultResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period is not in a validatable state or a lifecycle run is in progress"
// @Security BearerAuth
// @Router /accounting/periods/{id}/validate [post]
func (h *periodHandler) validatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.periodService.ValidatePeriod(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to validate period")
		return
	}

	logger.Info("Period validated",
		slog.String("period_id", result.PeriodID),
		slog.Bool("clean", result.Clean),
		slog.Int("violations", len(result.Violations)))
	c.JSON(http.StatusOK, dto.ToValidationResultResponse(result))
}

// calculatePeriod godoc
// @Summary Calculate a period's balances
// @Description Recomputes per-account opening, movement and closing balances. Requires a current clean validation.
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.BalanceReportResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Validation is stale or a lifecycle run is in progress"
// @Security BearerAuth
// @Router /accounting/periods/{id}/calculate [post]
func (h *periodHandler) calculatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.periodService.CalculatePeriod(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to calculate period")
		return
	}

	logger.Info("Period calculated", slog.String("period_id", report.PeriodID), slog.Int("accounts", len(report.Balances)))
	c.JSON(http.StatusOK, dto.ToBalanceReportResponse(report))
}

// lockPeriod godoc
// @Summary Lock a period
// @Description Locks a period whose calculation is still current, making it read-only.
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodActionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Calculation is stale or the period cannot be locked from its current state"
// @Security BearerAuth
// @Router /accounting/periods/{id}/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to lock period")
		return
	}

	logger.Info("Period locked", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusOK, dto.PeriodActionResponse{
		Message: "Period locked successfully",
		Period:  dto.ToPeriodResponse(period),
	})
}

// changePeriodStatus godoc
// @Summary Administrative status override
// @Description Moves a period to an arbitrary non-transient status. Typically used to reopen a locked period.
// @Tags periods
// @Accept json
// @Produce json
// @Param id path string true "Period ID"
// @Param status body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.PeriodActionResponse
// @Failure 400 {object} ErrorResponse "Unknown or transient target status"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/periods/{id}/status [patch]
func (h *periodHandler) changePeriodStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, err := h.periodService.ChangePeriodStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to change period status")
		return
	}

	logger.Info("Period status changed", slog.String("period_id", period.PeriodID), slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, dto.PeriodActionResponse{
		Message: "Period status updated",
		Period:  dto.ToPeriodResponse(period),
	})
}

// getBalanceReport godoc
// @Summary Get the stored balance report for a period
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.BalanceReportResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounting/periods/{id}/balances [get]
func (h *periodHandler) getBalanceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.periodService.GetBalanceReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve balance report")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceReportResponse(report))
}
