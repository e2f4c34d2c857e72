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

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{pool: pool}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, email, created_at, created_by, updated_at, updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Email,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		INSERT INTO customers (customer_id, name, email, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Email,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	m, err := scanCustomer(r.pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	c := mapping.ToDomainCustomer(m)
	return &c, nil
}

// ListCustomers retrieves all customers ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var ms []models.Customer
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating customer rows: %w", err)
	}
	return mapping.ToDomainCustomers(ms), nil
}

// UpdateCustomer updates mutable customer fields.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		UPDATE customers
		SET name = $2, email = $3, updated_at = $4, updated_by = $5
		WHERE customer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		m.Email,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer row.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasSalesDocuments reports whether any invoice or receipt references the customer.
func (r *PgxCustomerRepository) HasSalesDocuments(ctx context.Context, customerID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM invoices WHERE customer_id = $1)
		    OR EXISTS (SELECT 1 FROM receipts WHERE customer_id = $1);
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, customerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check sales documents for customer %s: %w", customerID, err)
	}
	return exists, nil
}
