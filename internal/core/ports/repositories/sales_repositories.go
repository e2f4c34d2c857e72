package repositories

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error

	// HasSalesDocuments reports whether any invoice or receipt references the customer.
	HasSalesDocuments(ctx context.Context, customerID string) (bool, error)
}

// InvoiceRepositoryFacade defines persistence operations for invoices.
type InvoiceRepositoryFacade interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// ReceiptRepositoryFacade defines persistence operations for receipts.
type ReceiptRepositoryFacade interface {
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	FindReceiptByNumber(ctx context.Context, receiptNumber string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
	UpdateReceipt(ctx context.Context, receipt domain.Receipt) error
	DeleteReceipt(ctx context.Context, receiptID string) error
}
