package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the persisted sales customer row.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	AuditFields
}

// Invoice is the persisted sales invoice row.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	CustomerID    string          `db:"customer_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Currency      string          `db:"currency"`
	Status        string          `db:"status"`
	PeriodID      string          `db:"period_id"`
	AuditFields
}

// Receipt is the persisted customer payment row.
type Receipt struct {
	ReceiptID     string          `db:"receipt_id"`
	ReceiptNumber string          `db:"receipt_number"`
	PaymentDate   time.Time       `db:"payment_date"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	CustomerID    string          `db:"customer_id"`
	InvoiceID     sql.NullString `db:"invoice_id"`
	PeriodID      string         `db:"period_id"`
	AuditFields
}
