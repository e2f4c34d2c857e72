package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	"github.com/ikicamilo/oceanre-backend/internal/models"
	"github.com/ikicamilo/oceanre-backend/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// newPgxInvoiceRepository creates a new repository for sales invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{pool: pool}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, issue_date, due_date, customer_id, total_amount, currency, status, period_id, created_at, created_by, updated_at, updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.IssueDate,
		&m.DueDate,
		&m.CustomerID,
		&m.TotalAmount,
		&m.Currency,
		&m.Status,
		&m.PeriodID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice persists a new invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (invoice_id, invoice_number, issue_date, due_date, customer_id, total_amount, currency, status, period_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.IssueDate,
		m.DueDate,
		m.CustomerID,
		m.TotalAmount,
		m.Currency,
		m.Status,
		m.PeriodID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceNumber)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// FindInvoiceByNumber retrieves an invoice by its unique number.
func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_number = $1;`

	m, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by number %s: %w", invoiceNumber, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// ListInvoices retrieves all invoices ordered by issue date descending.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC, invoice_number;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var ms []models.Invoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating invoice rows: %w", err)
	}
	return mapping.ToDomainInvoices(ms), nil
}

// UpdateInvoice updates mutable invoice fields.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET invoice_number = $2, issue_date = $3, due_date = $4, customer_id = $5, total_amount = $6, currency = $7, status = $8, updated_at = $9, updated_by = $10
		WHERE invoice_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.IssueDate,
		m.DueDate,
		m.CustomerID,
		m.TotalAmount,
		m.Currency,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceNumber)
		}
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice row.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
