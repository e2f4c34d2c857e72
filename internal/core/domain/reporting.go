package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViolationCode classifies a consistency failure found by period validation.
type ViolationCode string

const (
	ViolationUnbalancedEntry   ViolationCode = "UNBALANCED_ENTRY"
	ViolationNonPostableLine   ViolationCode = "NON_POSTABLE_ACCOUNT"
	ViolationDateOutOfRange    ViolationCode = "POSTING_DATE_OUT_OF_RANGE"
	ViolationMalformedLine     ViolationCode = "MALFORMED_LINE"
	ViolationUnknownAccountRef ViolationCode = "UNKNOWN_ACCOUNT"
)

// Violation describes a single consistency failure inside a period.
// Validation failures are expected business outcomes, reported as data.
type Violation struct {
	Code        ViolationCode
	EntryID     string
	EntryNumber string
	LineID      string // empty for entry-level violations
	Message     string
}

// ValidationResult is the payload returned by a validation pass over a period.
type ValidationResult struct {
	PeriodID    string
	Clean       bool
	Violations  []Violation
	EntriesRead int
	ValidatedAt time.Time
}

// AccountBalance is one row of a period balance report: aggregate movement for
// an account with carried-forward opening balance.
type AccountBalance struct {
	AccountID      string
	AccountCode    string
	AccountName    string
	OpeningBalance decimal.Decimal // closing balance of the preceding period, or zero
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
	ClosingBalance decimal.Decimal // opening + debits - credits
}

// BalanceReport is the payload produced by a period calculation.
type BalanceReport struct {
	PeriodID     string
	Balances     []AccountBalance
	CalculatedAt time.Time
}
