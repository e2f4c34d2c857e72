package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceiptRequest defines the data needed to record a customer payment.
type CreateReceiptRequest struct {
	ReceiptNumber string          `json:"receipt_number" binding:"required"`
	PaymentDate   Date            `json:"payment_date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	CustomerID    string          `json:"customer_id" binding:"required"`
	InvoiceID     string          `json:"invoice_id"`
	PeriodID      string          `json:"period_id" binding:"required"`
}

// UpdateReceiptRequest defines the data allowed for updating a receipt.
type UpdateReceiptRequest struct {
	ReceiptNumber *string          `json:"receipt_number"`
	PaymentDate   *Date            `json:"payment_date"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency" binding:"omitempty,len=3"`
	CustomerID    *string          `json:"customer_id"`
	InvoiceID     *string          `json:"invoice_id"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	PaymentDate   Date            `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CustomerID    string          `json:"customer_id"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	PeriodID      string          `json:"period_id"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
	UpdatedAt     time.Time       `json:"updated_at"`
	UpdatedBy     string          `json:"updated_by"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:            r.ReceiptID,
		ReceiptNumber: r.ReceiptNumber,
		PaymentDate:   NewDate(r.PaymentDate),
		Amount:        r.Amount,
		Currency:      r.Currency,
		CustomerID:    r.CustomerID,
		InvoiceID:     r.InvoiceID,
		PeriodID:      r.PeriodID,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		UpdatedAt:     r.LastUpdatedAt,
		UpdatedBy:     r.LastUpdatedBy,
	}
}

// ToListReceiptResponse converts a slice of domain.Receipt to responses.
func ToListReceiptResponse(receipts []domain.Receipt) []ReceiptResponse {
	res := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		res[i] = ToReceiptResponse(&receipts[i])
	}
	return res
}
