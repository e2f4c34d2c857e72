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

// receiptHandler handles HTTP requests related to payment receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// registerReceiptRoutes registers receipt management routes.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.listReceipts)
		receipts.GET("/:id", h.getReceipt)

		manage := receipts.Group("", middleware.RequireCapability(domain.CapManageSales))
		{
			manage.POST("", h.createReceipt)
			manage.PUT("/:id", h.updateReceipt)
			manage.DELETE("/:id", h.deleteReceipt)
		}
	}
}

// createReceipt godoc
// @Summary Record a customer payment
// @Description Creates a receipt against a period, optionally settling an invoice. Rejected with 409 while the period is locked or mid-lifecycle.
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create receipt")
		return
	}

	logger.Info("Receipt created", slog.String("receipt_id", receipt.ReceiptID), slog.String("receipt_number", receipt.ReceiptNumber))
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Success 200 {array} dto.ReceiptResponse
// @Security BearerAuth
// @Router /sales/receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipts, err := h.receiptService.ListReceipts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list receipts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReceiptResponse(receipts))
}

// getReceipt godoc
// @Summary Get a receipt by ID
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/receipts/{id} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// updateReceipt godoc
// @Summary Update a receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Receipt ID"
// @Param receipt body dto.UpdateReceiptRequest true "Fields to update"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/receipts/{id} [put]
func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// deleteReceipt godoc
// @Summary Delete a receipt
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/receipts/{id} [delete]
func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete receipt")
		return
	}
	c.Status(http.StatusNoContent)
}
