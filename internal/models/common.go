package models

import "time"

// AuditFields holds the persisted audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"updated_at"`
	LastUpdatedBy string    `db:"updated_by"`
}
