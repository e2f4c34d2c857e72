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

type PgxReceiptRepository struct {
	pool *pgxpool.Pool
}

// newPgxReceiptRepository creates a new repository for customer payment data.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{pool: pool}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

const receiptColumns = `receipt_id, receipt_number, payment_date, amount, currency, customer_id, invoice_id, period_id, created_at, created_by, updated_at, updated_by`

func scanReceipt(row pgx.Row) (models.Receipt, error) {
	var m models.Receipt
	err := row.Scan(
		&m.ReceiptID,
		&m.ReceiptNumber,
		&m.PaymentDate,
		&m.Amount,
		&m.Currency,
		&m.CustomerID,
		&m.InvoiceID,
		&m.PeriodID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReceipt persists a new receipt.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)

	query := `
		INSERT INTO receipts (receipt_id, receipt_number, payment_date, amount, currency, customer_id, invoice_id, period_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ReceiptID,
		m.ReceiptNumber,
		m.PaymentDate,
		m.Amount,
		m.Currency,
		m.CustomerID,
		m.InvoiceID,
		m.PeriodID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receipt number %s already exists", apperrors.ErrDuplicate, m.ReceiptNumber)
		}
		return fmt.Errorf("failed to save receipt %s: %w", m.ReceiptID, err)
	}
	return nil
}

// FindReceiptByID retrieves a receipt by ID.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1;`

	m, err := scanReceipt(r.pool.QueryRow(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt %s: %w", receiptID, err)
	}
	rec := mapping.ToDomainReceipt(m)
	return &rec, nil
}

// FindReceiptByNumber retrieves a receipt by its unique number.
func (r *PgxReceiptRepository) FindReceiptByNumber(ctx context.Context, receiptNumber string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_number = $1;`

	m, err := scanReceipt(r.pool.QueryRow(ctx, query, receiptNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt by number %s: %w", receiptNumber, err)
	}
	rec := mapping.ToDomainReceipt(m)
	return &rec, nil
}

// ListReceipts retrieves all receipts ordered by payment date descending.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts ORDER BY payment_date DESC, receipt_number;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var ms []models.Receipt
	for rows.Next() {
		m, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating receipt rows: %w", err)
	}
	return mapping.ToDomainReceipts(ms), nil
}

// UpdateReceipt updates mutable receipt fields.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)

	query := `
		UPDATE receipts
		SET receipt_number = $2, payment_date = $3, amount = $4, currency = $5, customer_id = $6, invoice_id = $7, updated_at = $8, updated_by = $9
		WHERE receipt_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ReceiptID,
		m.ReceiptNumber,
		m.PaymentDate,
		m.Amount,
		m.Currency,
		m.CustomerID,
		m.InvoiceID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: receipt number %s already exists", apperrors.ErrDuplicate, m.ReceiptNumber)
		}
		return fmt.Errorf("failed to update receipt %s: %w", m.ReceiptID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteReceipt removes a receipt row.
func (r *PgxReceiptRepository) DeleteReceipt(ctx context.Context, receiptID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM receipts WHERE receipt_id = $1;`, receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt %s: %w", receiptID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
