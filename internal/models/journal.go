package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the persisted journal entry header row.
type JournalEntry struct {
	EntryID         string    `db:"entry_id"`
	EntryNumber     string    `db:"entry_number"`
	PostingDate     time.Time `db:"posting_date"`
	Description     string    `db:"description"`
	SourceReference string    `db:"source_reference"`
	PeriodID        string    `db:"period_id"`
	AuditFields
}

// JournalLine is a persisted debit/credit line belonging to one entry.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	AuditFields
}
