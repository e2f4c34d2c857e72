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

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers customer management routes.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)

		manage := customers.Group("", middleware.RequireCapability(domain.CapManageSales))
		{
			manage.POST("", h.createCustomer)
			manage.PUT("/:id", h.updateCustomer)
			manage.DELETE("/:id", h.deleteCustomer)
		}
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse
// @Security BearerAuth
// @Router /sales/customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Deletes a customer no invoice or receipt references. Fails with 409 otherwise.
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}
