package domain

import "time"

// PeriodStatus is the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen        PeriodStatus = "OPEN"
	PeriodValidating  PeriodStatus = "VALIDATING"
	PeriodCalculating PeriodStatus = "CALCULATING"
	PeriodLocked      PeriodStatus = "LOCKED"
	PeriodReopened    PeriodStatus = "REOPENED"
)

// IsValidPeriodStatus reports whether s is one of the five lifecycle states.
func IsValidPeriodStatus(s PeriodStatus) bool {
	switch s {
	case PeriodOpen, PeriodValidating, PeriodCalculating, PeriodLocked, PeriodReopened:
		return true
	}
	return false
}

// IsTransient reports whether s is one of the in-flight states that only
// validate/calculate may enter.
func (s PeriodStatus) IsTransient() bool {
	return s == PeriodValidating || s == PeriodCalculating
}

// AcceptsPostings reports whether journal mutations are allowed in the state.
// VALIDATING/CALCULATING are additionally excluded by the per-period guard.
func (s PeriodStatus) AcceptsPostings() bool {
	return s == PeriodOpen || s == PeriodReopened
}

// Period is a bounded date range against which journal entries are posted and
// whose aggregate balances are eventually locked.
type Period struct {
	PeriodID   string
	PeriodName string // unique
	StartDate  time.Time
	EndDate    time.Time
	Status     PeriodStatus

	// Dirty is set by any journal mutation in the period; it invalidates the
	// last clean validation and the last calculation.
	Dirty            bool
	LastValidatedAt  *time.Time // last clean validation
	LastCalculatedAt *time.Time

	AuditFields
}

// ContainsDate reports whether d falls inside the period's inclusive date range.
func (p *Period) ContainsDate(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// ValidationIsCurrent reports whether the period holds a clean validation that
// no mutation has invalidated since.
func (p *Period) ValidationIsCurrent() bool {
	return !p.Dirty && p.LastValidatedAt != nil
}

// CalculationIsCurrent reports whether the period holds a calculation that is
// at least as recent as the last clean validation, with no mutation since.
func (p *Period) CalculationIsCurrent() bool {
	if p.Dirty || p.LastValidatedAt == nil || p.LastCalculatedAt == nil {
		return false
	}
	return !p.LastCalculatedAt.Before(*p.LastValidatedAt)
}
