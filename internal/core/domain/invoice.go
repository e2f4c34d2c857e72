package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceOpen      InvoiceStatus = "OPEN"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// IsValidInvoiceStatus reports whether s is a known invoice status.
func IsValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceOpen, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is a sales invoice issued to a customer, posted against a period.
type Invoice struct {
	InvoiceID     string
	InvoiceNumber string // unique
	IssueDate     time.Time
	DueDate       time.Time
	CustomerID    string
	TotalAmount   decimal.Decimal
	Currency      string // ISO 4217 code
	Status        InvoiceStatus
	PeriodID      string
	AuditFields
}
