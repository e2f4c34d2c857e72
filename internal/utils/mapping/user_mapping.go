package mapping

import (
	"database/sql"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/models"
)

// ToModelUser converts a domain user to its persisted form.
func ToModelUser(u domain.User) models.User {
	m := models.User{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		AuditFields:  ToModelAuditFields(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
	if u.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: u.RefreshTokenHash, Valid: true}
	}
	if u.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *u.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a persisted user row to the domain form.
func ToDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
	if m.RefreshTokenHash.Valid {
		u.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		u.RefreshTokenExpiryTime = &t
	}
	return u
}

// ToDomainUsers converts a slice of persisted users.
func ToDomainUsers(ms []models.User) []domain.User {
	out := make([]domain.User, len(ms))
	for i, m := range ms {
		out[i] = ToDomainUser(m)
	}
	return out
}
