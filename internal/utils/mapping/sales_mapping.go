package mapping

import (
	"database/sql"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/models"
)

// ToModelCustomer converts a domain customer to its persisted form.
func ToModelCustomer(c domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  c.CustomerID,
		Name:        c.Name,
		Email:       c.Email,
		AuditFields: ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainCustomer converts a persisted customer row to the domain form.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Email:       m.Email,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomers converts a slice of persisted customers.
func ToDomainCustomers(ms []models.Customer) []domain.Customer {
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCustomer(m)
	}
	return out
}

// ToModelInvoice converts a domain invoice to its persisted form.
func ToModelInvoice(inv domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		CustomerID:    inv.CustomerID,
		TotalAmount:   inv.TotalAmount,
		Currency:      inv.Currency,
		Status:        string(inv.Status),
		PeriodID:      inv.PeriodID,
		AuditFields:   ToModelAuditFields(inv.AuditFields),
	}
}

// ToDomainInvoice converts a persisted invoice row to the domain form.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		CustomerID:    m.CustomerID,
		TotalAmount:   m.TotalAmount,
		Currency:      m.Currency,
		Status:        domain.InvoiceStatus(m.Status),
		PeriodID:      m.PeriodID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoices converts a slice of persisted invoices.
func ToDomainInvoices(ms []models.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		out[i] = ToDomainInvoice(m)
	}
	return out
}

// ToModelReceipt converts a domain receipt to its persisted form.
func ToModelReceipt(r domain.Receipt) models.Receipt {
	m := models.Receipt{
		ReceiptID:     r.ReceiptID,
		ReceiptNumber: r.ReceiptNumber,
		PaymentDate:   r.PaymentDate,
		Amount:        r.Amount,
		Currency:      r.Currency,
		CustomerID:    r.CustomerID,
		PeriodID:      r.PeriodID,
		AuditFields:   ToModelAuditFields(r.AuditFields),
	}
	if r.InvoiceID != "" {
		m.InvoiceID = sql.NullString{String: r.InvoiceID, Valid: true}
	}
	return m
}

// ToDomainReceipt converts a persisted receipt row to the domain form.
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	r := domain.Receipt{
		ReceiptID:     m.ReceiptID,
		ReceiptNumber: m.ReceiptNumber,
		PaymentDate:   m.PaymentDate,
		Amount:        m.Amount,
		Currency:      m.Currency,
		CustomerID:    m.CustomerID,
		PeriodID:      m.PeriodID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.InvoiceID.Valid {
		r.InvoiceID = m.InvoiceID.String
	}
	return r
}

// ToDomainReceipts converts a slice of persisted receipts.
func ToDomainReceipts(ms []models.Receipt) []domain.Receipt {
	out := make([]domain.Receipt, len(ms))
	for i, m := range ms {
		out[i] = ToDomainReceipt(m)
	}
	return out
}
