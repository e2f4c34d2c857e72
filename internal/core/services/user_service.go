package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/middleware"
	"github.com/ikicamilo/oceanre-backend/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// userService implements user management and credential verification.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := req.Role
	if role == "" {
		role = domain.RoleSales
	}
	if !domain.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmailTaken)
		}
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves a single user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves all non-deleted users.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// UpdateUser changes name and/or role.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !domain.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	user.TouchAudit(updaterUserID, time.Now().UTC())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleterUserID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.MarkUserDeleted(ctx, userID, deleterUserID, time.Now().UTC())
}

// AuthenticateUser verifies email/password credentials.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password, no account enumeration.
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, ErrInvalidCredentials)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, ErrInvalidCredentials)
	}
	return user, nil
}

// FindOrCreateOAuthUser resolves a user from an external identity, creating
// one with the SALES role on first sight.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// External identities get a random local credential; they authenticate
	// through the provider, never with a password.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSales,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, err
	}
	logger.Info("OAuth user provisioned", slog.String("user_id", newUser.UserID), slog.String("email", email))
	return &newUser, nil
}

// StoreRefreshToken persists the hash and expiry of a freshly issued refresh token.
func (s *userService) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, &tokenHash, &expiresAt, time.Now().UTC())
}

// ClearRefreshToken invalidates the stored refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil, nil, time.Now().UTC())
}
