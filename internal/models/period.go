package models

import "time"

// Period is the persisted accounting period row, including the lifecycle
// bookkeeping columns the engine maintains.
type Period struct {
	PeriodID         string     `db:"period_id"`
	PeriodName       string     `db:"period_name"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          time.Time  `db:"end_date"`
	Status           string     `db:"status"`
	Dirty            bool       `db:"dirty"`
	LastValidatedAt  *time.Time `db:"last_validated_at"`
	LastCalculatedAt *time.Time `db:"last_calculated_at"`
	AuditFields
}
