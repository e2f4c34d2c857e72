package services

import (
	"context"
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
)

// UserSvcFacade defines user management and credential verification.
type UserSvcFacade interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// GetUserByID retrieves a single user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all non-deleted users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUser changes name and/or role.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error

	// AuthenticateUser verifies email/password credentials. Fails with
	// apperrors.ErrUnauthorized on a mismatch.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves a user from an external identity,
	// creating one with the SALES role on first sight.
	FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error)

	// StoreRefreshToken persists the hash and expiry of a freshly issued
	// refresh token.
	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ClearRefreshToken invalidates the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// TokenSvcFacade issues and validates access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user id and role.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a presented refresh token against the stored
	// hash and returns the owning user.
	ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade drives the Google sign-in redirect flow.
type GoogleOAuthSvcFacade interface {
	// AuthCodeURL builds the Google consent redirect URL for the given state.
	AuthCodeURL(state string) string

	// ExchangeCode trades the callback code for the Google user's email/name.
	ExchangeCode(ctx context.Context, code string) (email, name string, err error)
}
