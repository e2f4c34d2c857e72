package mapping

import (
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its persisted form.
func ToModelJournalEntry(e domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		PostingDate:     e.PostingDate,
		Description:     e.Description,
		SourceReference: e.SourceReference,
		PeriodID:        e.PeriodID,
		AuditFields:     ToModelAuditFields(e.AuditFields),
	}
}

// ToDomainJournalEntry converts a persisted journal entry row to the domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		PostingDate:     m.PostingDate,
		Description:     m.Description,
		SourceReference: m.SourceReference,
		PeriodID:        m.PeriodID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntries converts a slice of persisted entries.
func ToDomainJournalEntries(ms []models.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalEntry(m)
	}
	return out
}

// ToModelJournalLine converts a domain journal line to its persisted form.
func ToModelJournalLine(l domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      l.LineID,
		EntryID:     l.EntryID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		AuditFields: ToModelAuditFields(l.AuditFields),
	}
}

// ToDomainJournalLine converts a persisted journal line row to the domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLines converts a slice of persisted lines.
func ToDomainJournalLines(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
