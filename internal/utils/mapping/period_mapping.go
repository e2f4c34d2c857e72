package mapping

import (
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/models"
)

// ToModelPeriod converts a domain period to its persisted form.
func ToModelPeriod(p domain.Period) models.Period {
	return models.Period{
		PeriodID:         p.PeriodID,
		PeriodName:       p.PeriodName,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Status:           string(p.Status),
		Dirty:            p.Dirty,
		LastValidatedAt:  p.LastValidatedAt,
		LastCalculatedAt: p.LastCalculatedAt,
		AuditFields:      ToModelAuditFields(p.AuditFields),
	}
}

// ToDomainPeriod converts a persisted period row to the domain form.
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:         m.PeriodID,
		PeriodName:       m.PeriodName,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           domain.PeriodStatus(m.Status),
		Dirty:            m.Dirty,
		LastValidatedAt:  m.LastValidatedAt,
		LastCalculatedAt: m.LastCalculatedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriods converts a slice of persisted periods.
func ToDomainPeriods(ms []models.Period) []domain.Period {
	out := make([]domain.Period, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPeriod(m)
	}
	return out
}
