package mapping

import (
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/models"
)

// ToModelAuditFields converts domain audit fields to their persisted form.
func ToModelAuditFields(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts persisted audit columns to the domain form.
func ToDomainAuditFields(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
