package mapping

import (
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/models"
)

// ToModelAccount converts a domain account to its persisted form.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:   a.AccountID,
		AccountCode: a.AccountCode,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		IsPostable:  a.IsPostable,
		AuditFields: ToModelAuditFields(a.AuditFields),
	}
}

// ToDomainAccount converts a persisted account row to the domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		IsPostable:  m.IsPostable,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccounts converts a slice of persisted accounts.
func ToDomainAccounts(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
