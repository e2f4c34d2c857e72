package services

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

// JournalSvcFacade defines the business operations of the journal entry store.
// Every mutation marks the owning period dirty for the lifecycle engine.
type JournalSvcFacade interface {
	// CreateEntry creates a journal entry, optionally with initial lines.
	// Fails with apperrors.ErrValidation on a non-postable account, a posting
	// date outside the period range or malformed line amounts, and with
	// apperrors.ErrConflict when the period does not accept postings.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry together with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.JournalLine, error)

	// ListEntries retrieves a page of entries, optionally filtered by period.
	ListEntries(ctx context.Context, periodID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// UpdateEntry changes header fields of an entry under the same period guards.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry and its lines under the same period guards.
	DeleteEntry(ctx context.Context, entryID string, userID string) error

	// AddLine appends a line to an existing entry. Fails with
	// apperrors.ErrConflict while the owning period is LOCKED or a lifecycle
	// operation is in flight.
	AddLine(ctx context.Context, req dto.CreateJournalLineRequest, creatorUserID string) (*domain.JournalLine, error)

	// GetLinesByEntry retrieves the lines of an entry.
	GetLinesByEntry(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// DeleteLine removes a single line under the same period guards.
	DeleteLine(ctx context.Context, lineID string, userID string) error
}
