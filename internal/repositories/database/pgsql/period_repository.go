package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	"github.com/ikicamilo/oceanre-backend/internal/models"
	"github.com/ikicamilo/oceanre-backend/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, period_name, start_date, end_date, status, dirty, last_validated_at, last_calculated_at, created_at, created_by, updated_at, updated_by`

func scanPeriod(row pgx.Row) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.PeriodName,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.Dirty,
		&m.LastValidatedAt,
		&m.LastCalculatedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod persists a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO periods (period_id, period_name, start_date, end_date, status, dirty, last_validated_at, last_calculated_at, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.PeriodName,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.Dirty,
		m.LastValidatedAt,
		m.LastCalculatedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period name %s already exists", apperrors.ErrDuplicate, m.PeriodName)
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// ListPeriods retrieves all periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods ORDER BY start_date;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var ms []models.Period
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating period rows: %w", err)
	}
	return mapping.ToDomainPeriods(ms), nil
}

// FindOverlappingPeriod returns a period whose date range overlaps [start, end],
// excluding excludeID, or nil when none exists.
func (r *PgxPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time, excludeID string) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE start_date <= $2 AND end_date >= $1 AND period_id <> $3
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find overlapping period: %w", err)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// FindPrecedingPeriod returns the period with the greatest end date strictly
// before start, or nil when there is none.
func (r *PgxPeriodRepository) FindPrecedingPeriod(ctx context.Context, start time.Time) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE end_date < $1
		ORDER BY end_date DESC
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find preceding period: %w", err)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// UpdatePeriod updates name and date range of a period.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)

	query := `
		UPDATE periods
		SET period_name = $2, start_date = $3, end_date = $4, updated_at = $5, updated_by = $6
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.PeriodName,
		m.StartDate,
		m.EndDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period name %s already exists", apperrors.ErrDuplicate, m.PeriodName)
		}
		return fmt.Errorf("failed to update period %s: %w", m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePeriod removes a period row.
func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM periods WHERE period_id = $1;`, periodID)
	if err != nil {
		return fmt.Errorf("failed to delete period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CompareAndSwapStatus conditionally moves the period from one of the expected
// statuses to next, returning the row as stored immediately before the swap.
// The row lock makes concurrent transitions serialize at the database even
// when callers bypass the in-process guard.
func (r *PgxPeriodRepository) CompareAndSwapStatus(ctx context.Context, periodID string, expected []domain.PeriodStatus, next domain.PeriodStatus, updatedBy string, at time.Time) (*domain.Period, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1 FOR UPDATE;`
	m, err := scanPeriod(tx.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock period %s: %w", periodID, err)
	}

	matched := false
	for _, status := range expected {
		if m.Status == string(status) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrConflict, periodID, m.Status)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE periods SET status = $2, updated_at = $3, updated_by = $4 WHERE period_id = $1;`,
		periodID, string(next), at, updatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to swap status of period %s: %w", periodID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	prior := mapping.ToDomainPeriod(m)
	return &prior, nil
}

// SetLifecycleMarks stores the dirty flag and validation/calculation timestamps.
func (r *PgxPeriodRepository) SetLifecycleMarks(ctx context.Context, periodID string, dirty bool, validatedAt, calculatedAt *time.Time, updatedBy string, at time.Time) error {
	query := `
		UPDATE periods
		SET dirty = $2,
		    last_validated_at = COALESCE($3, last_validated_at),
		    last_calculated_at = COALESCE($4, last_calculated_at),
		    updated_at = $5, updated_by = $6
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, dirty, validatedAt, calculatedAt, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set lifecycle marks on period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkDirty flags the period as mutated since its last validation.
func (r *PgxPeriodRepository) MarkDirty(ctx context.Context, periodID string, updatedBy string, at time.Time) error {
	query := `UPDATE periods SET dirty = TRUE, updated_at = $2, updated_by = $3 WHERE period_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, periodID, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark period %s dirty: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const balanceColumns = `pb.period_id, pb.account_id, a.account_code, a.name, pb.opening_balance, pb.total_debits, pb.total_credits, pb.closing_balance, pb.calculated_at`

// FindBalanceReport returns the persisted report for the period.
func (r *PgxPeriodRepository) FindBalanceReport(ctx context.Context, periodID string) (*domain.BalanceReport, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM period_balances pb
		JOIN accounts a ON a.account_id = pb.account_id
		WHERE pb.period_id = $1
		ORDER BY a.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance report for period %s: %w", periodID, err)
	}
	defer rows.Close()

	report := domain.BalanceReport{PeriodID: periodID}
	for rows.Next() {
		var b domain.AccountBalance
		var rowPeriodID string
		if err := rows.Scan(
			&rowPeriodID,
			&b.AccountID,
			&b.AccountCode,
			&b.AccountName,
			&b.OpeningBalance,
			&b.TotalDebits,
			&b.TotalCredits,
			&b.ClosingBalance,
			&report.CalculatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		report.Balances = append(report.Balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating balance rows: %w", err)
	}
	if len(report.Balances) == 0 {
		return nil, fmt.Errorf("%w: no balance report for period %s", apperrors.ErrNotFound, periodID)
	}
	return &report, nil
}

// FindClosingBalances returns closing balances per account for the period.
func (r *PgxPeriodRepository) FindClosingBalances(ctx context.Context, periodID string) (map[string]domain.AccountBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM period_balances pb
		JOIN accounts a ON a.account_id = pb.account_id
		WHERE pb.period_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing balances for period %s: %w", periodID, err)
	}
	defer rows.Close()

	result := make(map[string]domain.AccountBalance)
	for rows.Next() {
		var b domain.AccountBalance
		var rowPeriodID string
		var calculatedAt time.Time
		if err := rows.Scan(
			&rowPeriodID,
			&b.AccountID,
			&b.AccountCode,
			&b.AccountName,
			&b.OpeningBalance,
			&b.TotalDebits,
			&b.TotalCredits,
			&b.ClosingBalance,
			&calculatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		result[b.AccountID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating balance rows: %w", err)
	}
	return result, nil
}

// ReplaceBalanceReport atomically replaces the stored report for a period.
func (r *PgxPeriodRepository) ReplaceBalanceReport(ctx context.Context, report domain.BalanceReport) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM period_balances WHERE period_id = $1;`, report.PeriodID); err != nil {
		return fmt.Errorf("failed to clear balance report for period %s: %w", report.PeriodID, err)
	}

	query := `
		INSERT INTO period_balances (period_id, account_id, opening_balance, total_debits, total_credits, closing_balance, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, b := range report.Balances {
		if _, err := tx.Exec(ctx, query,
			report.PeriodID,
			b.AccountID,
			b.OpeningBalance,
			b.TotalDebits,
			b.TotalCredits,
			b.ClosingBalance,
			report.CalculatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert balance row for account %s: %w", b.AccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}
