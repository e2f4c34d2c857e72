package dto

import (
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest defines one debit/credit line. EntryID is required
// when posting through the standalone lines endpoint and ignored when nested
// inside an entry creation request.
type CreateJournalLineRequest struct {
	EntryID   string          `json:"journal_entry_id"`
	AccountID string          `json:"account_id" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	EntryNumber     string                     `json:"entry_number" binding:"required"`
	PostingDate     Date                       `json:"posting_date" binding:"required"`
	Description     string                     `json:"description"`
	SourceReference string                     `json:"source_reference"`
	PeriodID        string                     `json:"period_id" binding:"required"`
	Lines           []CreateJournalLineRequest `json:"lines"`
}

// UpdateJournalEntryRequest defines the data allowed for updating an entry header.
type UpdateJournalEntryRequest struct {
	EntryNumber     *string `json:"entry_number"`
	PostingDate     *Date   `json:"posting_date"`
	Description     *string `json:"description"`
	SourceReference *string `json:"source_reference"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	ID        string          `json:"id"`
	EntryID   string          `json:"journal_entry_id"`
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	ID              string                `json:"id"`
	EntryNumber     string                `json:"entry_number"`
	PostingDate     Date                  `json:"posting_date"`
	Description     string                `json:"description"`
	SourceReference string                `json:"source_reference"`
	PeriodID        string                `json:"period_id"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	CreatedBy       string                `json:"created_by"`
	UpdatedAt       time.Time             `json:"updated_at"`
	UpdatedBy       string                `json:"updated_by"`
}

// ListJournalEntriesResponse wraps a page of entries with the next page token.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"next_token,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response shape.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		ID:        l.LineID,
		EntryID:   l.EntryID,
		AccountID: l.AccountID,
		Debit:     l.Debit,
		Credit:    l.Credit,
		CreatedAt: l.CreatedAt,
		CreatedBy: l.CreatedBy,
	}
}

// ToListJournalLineResponse converts a slice of lines to responses.
func ToListJournalLineResponse(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i := range lines {
		res[i] = ToJournalLineResponse(&lines[i])
	}
	return res
}

// ToJournalEntryResponse converts an entry and optional lines to the response shape.
func ToJournalEntryResponse(e *domain.JournalEntry, lines []domain.JournalLine) JournalEntryResponse {
	resp := JournalEntryResponse{
		ID:              e.EntryID,
		EntryNumber:     e.EntryNumber,
		PostingDate:     NewDate(e.PostingDate),
		Description:     e.Description,
		SourceReference: e.SourceReference,
		PeriodID:        e.PeriodID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		UpdatedAt:       e.LastUpdatedAt,
		UpdatedBy:       e.LastUpdatedBy,
	}
	if lines != nil {
		resp.Lines = ToListJournalLineResponse(lines)
	}
	return resp
}

// ToListJournalEntryResponse converts a slice of entries (without lines).
func ToListJournalEntryResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i], nil)
	}
	return res
}
