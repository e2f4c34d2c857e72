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
	"github.com/ikicamilo/oceanre-backend/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_number, posting_date, description, source_reference, period_id, created_at, created_by, updated_at, updated_by`
const lineColumns = `line_id, entry_id, account_id, debit, credit, created_at, created_by, updated_at, updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.PostingDate,
		&m.Description,
		&m.SourceReference,
		&m.PeriodID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists a new entry and its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_number, posting_date, description, source_reference, period_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.PostingDate,
		m.Description,
		m.SourceReference,
		m.PeriodID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		if _, err := tx.Exec(ctx, lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.AccountID,
			lm.Debit,
			lm.Credit,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to save journal line %s: %w", lm.LineID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a specific journal entry by its unique identifier.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	e := mapping.ToDomainJournalEntry(m)
	return &e, nil
}

// FindEntryByNumber retrieves a journal entry by its entry number.
func (r *PgxJournalRepository) FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_number = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by number %s: %w", entryNumber, err)
	}
	e := mapping.ToDomainJournalEntry(m)
	return &e, nil
}

// ListEntries retrieves a page of journal entries using keyset pagination on
// (posting_date, entry_id).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, periodID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []interface{}{periodID}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE period_id = $1`

	if nextToken != nil && *nextToken != "" {
		afterDate, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		query += ` AND (posting_date, entry_id) > ($2, $3)`
		args = append(args, afterDate, afterID)
	}

	// Fetch one extra row to know whether another page exists
	query += fmt.Sprintf(` ORDER BY posting_date, entry_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating journal entry rows: %w", err)
	}

	var newToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(last.PostingDate, last.EntryID)
		newToken = &token
	}
	return mapping.ToDomainJournalEntries(ms), newToken, nil
}

// ListEntriesByPeriod retrieves every entry of a period in one pass.
func (r *PgxJournalRepository) ListEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE period_id = $1 ORDER BY posting_date, entry_id;`

	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for period %s: %w", periodID, err)
	}
	defer rows.Close()

	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating journal entry rows: %w", err)
	}
	return mapping.ToDomainJournalEntries(ms), nil
}

// UpdateEntry updates the header fields of an entry.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	query := `
		UPDATE journal_entries
		SET entry_number = $2, posting_date = $3, description = $4, source_reference = $5, updated_at = $6, updated_by = $7
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.PostingDate,
		m.Description,
		m.SourceReference,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry; its lines cascade at the schema level.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLineByID retrieves a specific line by its unique identifier.
func (r *PgxJournalRepository) FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE line_id = $1;`

	m, err := scanLine(r.Pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal line %s: %w", lineID, err)
	}
	l := mapping.ToDomainJournalLine(m)
	return &l, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating journal line rows: %w", err)
	}
	return mapping.ToDomainJournalLines(ms), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines for entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating journal line rows: %w", err)
	}
	return result, nil
}

// SaveLine persists a new line on an existing entry.
func (r *PgxJournalRepository) SaveLine(ctx context.Context, line domain.JournalLine) error {
	m := mapping.ToModelJournalLine(line)

	query := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LineID,
		m.EntryID,
		m.AccountID,
		m.Debit,
		m.Credit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal line %s: %w", m.LineID, err)
	}
	return nil
}

// DeleteLine removes a single line.
func (r *PgxJournalRepository) DeleteLine(ctx context.Context, lineID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_lines WHERE line_id = $1;`, lineID)
	if err != nil {
		return fmt.Errorf("failed to delete journal line %s: %w", lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
