package services

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

// CustomerSvcFacade defines customer management operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)

	// DeleteCustomer removes a customer no invoice or receipt references;
	// otherwise fails with apperrors.ErrConflict.
	DeleteCustomer(ctx context.Context, customerID string, userID string) error
}

// InvoiceSvcFacade defines invoice management operations. Mutations are
// rejected with apperrors.ErrConflict while the referenced period is LOCKED.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string, userID string) error
}

// ReceiptSvcFacade defines receipt management operations, under the same
// locked-period guard as invoices.
type ReceiptSvcFacade interface {
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*domain.Receipt, error)
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
	UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest, userID string) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, receiptID string, userID string) error
}
