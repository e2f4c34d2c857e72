package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records a customer payment, optionally settling an invoice,
// posted against a period.
type Receipt struct {
	ReceiptID     string
	ReceiptNumber string // unique
	PaymentDate   time.Time
	Amount        decimal.Decimal
	Currency      string // ISO 4217 code
	CustomerID    string
	InvoiceID     string // optional
	PeriodID      string
	AuditFields
}
