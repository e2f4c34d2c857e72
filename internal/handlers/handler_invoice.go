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

// invoiceHandler handles HTTP requests related to sales invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers invoice management routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)

		manage := invoices.Group("", middleware.RequireCapability(domain.CapManageSales))
		{
			manage.POST("", h.createInvoice)
			manage.PUT("/:id", h.updateInvoice)
			manage.DELETE("/:id", h.deleteInvoice)
		}
	}
}

// createInvoice godoc
// @Summary Create a sales invoice
// @Description Creates an invoice against a period. Rejected with 409 while the period is locked or mid-lifecycle.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Success 200 {array} dto.InvoiceResponse
// @Security BearerAuth
// @Router /sales/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates invoice fields. Rejected with 409 while the referenced period is locked or mid-lifecycle.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Deletes an invoice. Rejected with 409 while the referenced period is locked or mid-lifecycle.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
