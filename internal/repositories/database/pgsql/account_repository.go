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

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_code, name, account_type, is_postable, created_at, created_by, updated_at, updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountCode,
		&m.Name,
		&m.AccountType,
		&m.IsPostable,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, account_code, name, account_type, is_postable, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.AccountCode,
		m.Name,
		m.AccountType,
		m.IsPostable,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.AccountCode)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its human-assigned code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", accountCode, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves the given accounts keyed by ID. Missing IDs are
// simply absent from the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return result, nil
}

// ListAccounts retrieves all accounts ordered by account code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_code;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return mapping.ToDomainAccounts(ms), nil
}

// HasPostedLines reports whether any journal line references the account.
func (r *PgxAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check posted lines for account %s: %w", accountID, err)
	}
	return exists, nil
}

// UpdateAccount updates the mutable fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, is_postable = $3, updated_at = $4, updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.IsPostable,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
