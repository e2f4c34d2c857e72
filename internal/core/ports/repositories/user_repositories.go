package repositories

import (
	"context"
	"time"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves all non-deleted users ordered by name.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates mutable user fields (name, role).
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	// A nil hash clears the stored token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time, at time.Time) error

	// MarkUserDeleted soft-deletes the user.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
