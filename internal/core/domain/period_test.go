package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

func TestPeriodStatusPredicates(t *testing.T) {
	assert.True(t, domain.PeriodOpen.AcceptsPostings())
	assert.True(t, domain.PeriodReopened.AcceptsPostings())
	assert.False(t, domain.PeriodLocked.AcceptsPostings())
	assert.False(t, domain.PeriodValidating.AcceptsPostings())
	assert.False(t, domain.PeriodCalculating.AcceptsPostings())

	assert.True(t, domain.PeriodValidating.IsTransient())
	assert.True(t, domain.PeriodCalculating.IsTransient())
	assert.False(t, domain.PeriodOpen.IsTransient())

	assert.True(t, domain.IsValidPeriodStatus(domain.PeriodReopened))
	assert.False(t, domain.IsValidPeriodStatus(domain.PeriodStatus("CLOSED")))
}

func TestPeriodContainsDate(t *testing.T) {
	period := domain.Period{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.ContainsDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.ContainsDate(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.ContainsDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.ContainsDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.ContainsDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidationAndCalculationCurrency(t *testing.T) {
	validatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	calculatedAt := validatedAt.Add(time.Minute)

	period := domain.Period{}
	assert.False(t, period.ValidationIsCurrent())
	assert.False(t, period.CalculationIsCurrent())

	period.LastValidatedAt = &validatedAt
	assert.True(t, period.ValidationIsCurrent())
	assert.False(t, period.CalculationIsCurrent())

	period.LastCalculatedAt = &calculatedAt
	assert.True(t, period.CalculationIsCurrent())

	// Any mutation invalidates both.
	period.Dirty = true
	assert.False(t, period.ValidationIsCurrent())
	assert.False(t, period.CalculationIsCurrent())

	// A calculation older than the last clean validation does not count.
	period.Dirty = false
	stale := validatedAt.Add(-time.Hour)
	period.LastCalculatedAt = &stale
	assert.False(t, period.CalculationIsCurrent())
}
