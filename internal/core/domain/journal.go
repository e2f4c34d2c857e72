package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the decimal precision used for all amount comparisons.
const MoneyPrecision = 2

var (
	ErrLineNegativeAmount = errors.New("journal line amounts must be non-negative")
	ErrLineZeroAmount     = errors.New("journal line must carry a nonzero debit or credit")
	ErrLineBothSides      = errors.New("journal line cannot carry both a debit and a credit")
)

// JournalEntry represents a single financial event composed of debit/credit lines,
// posted against exactly one accounting period.
type JournalEntry struct {
	EntryID         string
	EntryNumber     string // unique, human-visible
	PostingDate     time.Time
	Description     string
	SourceReference string
	PeriodID        string
	AuditFields
}

// JournalLine is a single debit or credit within a journal entry.
// Exactly one of Debit/Credit is nonzero; both are non-negative.
type JournalLine struct {
	LineID    string
	EntryID   string
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	AuditFields
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l *JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the nonzero side of the line.
func (l *JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// CheckAmounts verifies the debit/credit shape of a line: non-negative values
// and exactly one nonzero side. A zero/zero line carries no accounting meaning.
func (l *JournalLine) CheckAmounts() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrLineNegativeAmount
	}
	if l.Debit.IsZero() == l.Credit.IsZero() {
		if l.Debit.IsZero() {
			return ErrLineZeroAmount
		}
		return ErrLineBothSides
	}
	return nil
}

// EntryTotals sums the debit and credit sides of an entry's lines, rounded to
// MoneyPrecision. Lines referencing the same account are not merged; each
// contributes independently.
func EntryTotals(lines []JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits.Round(MoneyPrecision), credits.Round(MoneyPrecision)
}

// EntryIsBalanced reports whether an entry's lines satisfy the double-entry
// invariant at MoneyPrecision.
func EntryIsBalanced(lines []JournalLine) bool {
	debits, credits := EntryTotals(lines)
	return debits.Equal(credits)
}
