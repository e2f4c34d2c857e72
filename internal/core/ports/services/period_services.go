package services

import (
	"context"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

// PeriodSvcFacade defines the accounting period CRUD surface plus the
// lifecycle engine operations (validate, calculate, lock, status override).
type PeriodSvcFacade interface {
	// CreatePeriod creates a new period in OPEN status. Fails with
	// apperrors.ErrValidation on a taken name, inverted dates or a date range
	// overlapping an existing period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error)

	// GetPeriodByID retrieves a single period.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.Period, error)

	// UpdatePeriod changes name and/or dates of a period that is not LOCKED.
	UpdatePeriod(ctx context.Context, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.Period, error)

	// DeletePeriod removes a period with no journal entries posted against it.
	DeletePeriod(ctx context.Context, periodID string, userID string) error

	// ValidatePeriod runs the read-only consistency pass over every entry of
	// the period. Allowed from OPEN or REOPENED; serialized per period. The
	// result lists violations; a clean pass arms the period for calculation.
	ValidatePeriod(ctx context.Context, periodID string, userID string) (*domain.ValidationResult, error)

	// CalculatePeriod aggregates account balances with carry-forward from the
	// preceding period and persists the report. Fails with apperrors.ErrConflict
	// when no current clean validation exists.
	CalculatePeriod(ctx context.Context, periodID string, userID string) (*domain.BalanceReport, error)

	// LockPeriod transitions the period to LOCKED after a current calculation.
	LockPeriod(ctx context.Context, periodID string, userID string) (*domain.Period, error)

	// ChangePeriodStatus force-sets the status, rejecting the transient
	// VALIDATING/CALCULATING targets. Chiefly used to REOPEN a LOCKED period.
	ChangePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, userID string) (*domain.Period, error)

	// GetBalanceReport returns the persisted report of the last calculation.
	GetBalanceReport(ctx context.Context, periodID string) (*domain.BalanceReport, error)
}
