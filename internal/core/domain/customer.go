package domain

// Customer is a sales-side counterparty that invoices and receipts reference.
type Customer struct {
	CustomerID string
	Name       string
	Email      string
	AuditFields
}
