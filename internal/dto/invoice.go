package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create a sales invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number" binding:"required"`
	IssueDate     Date                 `json:"issue_date" binding:"required"`
	DueDate       Date                 `json:"due_date" binding:"required"`
	CustomerID    string               `json:"customer_id" binding:"required"`
	TotalAmount   decimal.Decimal      `json:"total_amount" binding:"required"`
	Currency      string               `json:"currency" binding:"required,len=3"`
	Status        domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=OPEN PAID CANCELLED"`
	PeriodID      string               `json:"period_id" binding:"required"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string               `json:"invoice_number"`
	IssueDate     *Date                 `json:"issue_date"`
	DueDate       *Date                 `json:"due_date"`
	CustomerID    *string               `json:"customer_id"`
	TotalAmount   *decimal.Decimal      `json:"total_amount"`
	Currency      *string               `json:"currency" binding:"omitempty,len=3"`
	Status        *domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=OPEN PAID CANCELLED"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	IssueDate     Date                 `json:"issue_date"`
	DueDate       Date                 `json:"due_date"`
	CustomerID    string               `json:"customer_id"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	Currency      string               `json:"currency"`
	Status        domain.InvoiceStatus `json:"status"`
	PeriodID      string               `json:"period_id"`
	CreatedAt     time.Time            `json:"created_at"`
	CreatedBy     string               `json:"created_by"`
	UpdatedAt     time.Time            `json:"updated_at"`
	UpdatedBy     string               `json:"updated_by"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     NewDate(inv.IssueDate),
		DueDate:       NewDate(inv.DueDate),
		CustomerID:    inv.CustomerID,
		TotalAmount:   inv.TotalAmount,
		Currency:      inv.Currency,
		Status:        inv.Status,
		PeriodID:      inv.PeriodID,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		UpdatedAt:     inv.LastUpdatedAt,
		UpdatedBy:     inv.LastUpdatedBy,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to responses.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
