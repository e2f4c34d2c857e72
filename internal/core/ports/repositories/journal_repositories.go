package repositories

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByNumber retrieves a journal entry by its entry number.
	FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of journal entries ordered by posting date
	// then entry id, using token-based pagination. periodID filters by period
	// when non-empty.
	ListEntries(ctx context.Context, periodID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListEntriesByPeriod retrieves every entry of a period in one pass,
	// ordered by posting date. Used by the lifecycle engine's full scans.
	ListEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntry updates the header fields of an entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes an entry and cascades its lines.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalLineReader defines read operations for journal line data.
type JournalLineReader interface {
	// FindLineByID retrieves a specific line by its unique identifier.
	FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error)

	// FindLinesByEntryID retrieves all lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalLineWriter defines write operations for journal line data.
type JournalLineWriter interface {
	// SaveLine persists a new line on an existing entry.
	SaveLine(ctx context.Context, line domain.JournalLine) error

	// DeleteLine removes a single line.
	DeleteLine(ctx context.Context, lineID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalLineReader
	JournalLineWriter
}
