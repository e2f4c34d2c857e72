package repositories

import (
	"context"
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data.
type PeriodReader interface {
	// FindPeriodByID retrieves a specific period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.Period, error)

	// FindOverlappingPeriod returns a period whose date range overlaps
	// [start, end], excluding excludeID, or nil when none exists.
	FindOverlappingPeriod(ctx context.Context, start, end time.Time, excludeID string) (*domain.Period, error)

	// FindPrecedingPeriod returns the period with the greatest end date strictly
	// before start, or nil when there is none.
	FindPrecedingPeriod(ctx context.Context, start time.Time) (*domain.Period, error)
}

// PeriodWriter defines write operations for accounting period data.
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.Period) error

	// UpdatePeriod updates name and date range of a period.
	UpdatePeriod(ctx context.Context, period domain.Period) error

	// DeletePeriod removes a period row. Callers must check references first.
	DeletePeriod(ctx context.Context, periodID string) error

	// CompareAndSwapStatus conditionally moves the period from one of the
	// expected statuses to next. On success it returns the period as stored
	// immediately before the swap (so callers know which state to revert to);
	// it fails with apperrors.ErrConflict when the stored status matched none
	// of the expected values. This is the optimistic guard behind every
	// lifecycle transition.
	CompareAndSwapStatus(ctx context.Context, periodID string, expected []domain.PeriodStatus, next domain.PeriodStatus, updatedBy string, at time.Time) (*domain.Period, error)

	// SetLifecycleMarks stores the dirty flag and validation/calculation
	// timestamps maintained by the lifecycle engine.
	SetLifecycleMarks(ctx context.Context, periodID string, dirty bool, validatedAt, calculatedAt *time.Time, updatedBy string, at time.Time) error

	// MarkDirty flags the period as mutated since its last validation.
	MarkDirty(ctx context.Context, periodID string, updatedBy string, at time.Time) error
}

// BalanceReportReader defines read access to persisted balance reports.
type BalanceReportReader interface {
	// FindBalanceReport returns the persisted report for the period, or
	// apperrors.ErrNotFound when the period was never calculated.
	FindBalanceReport(ctx context.Context, periodID string) (*domain.BalanceReport, error)

	// FindClosingBalances returns closing balances per account for the period.
	// An empty map when the period was never calculated.
	FindClosingBalances(ctx context.Context, periodID string) (map[string]domain.AccountBalance, error)
}

// BalanceReportWriter defines write access to persisted balance reports.
type BalanceReportWriter interface {
	// ReplaceBalanceReport atomically replaces the stored report for a period.
	ReplaceBalanceReport(ctx context.Context, report domain.BalanceReport) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
	BalanceReportReader
	BalanceReportWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities.
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
