package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/platform/config"
	"github.com/ikicamilo/oceanre-backend/internal/utils"
)

const refreshTokenByteLength = 32

// tokenService issues signed access tokens and opaque refresh tokens.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT carrying the user id and role.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates an opaque refresh token and its expiry. Only a
// hash of the token is ever stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return token, time.Now().UTC().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateRefreshToken checks a presented refresh token against the stored
// hash and returns the owning user.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().UTC().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// googleOAuthService drives the Google sign-in redirect flow.
type googleOAuthService struct {
	oauthCfg *oauth2.Config
}

// NewGoogleOAuthService creates a new GoogleOAuthService from app config.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// AuthCodeURL builds the Google consent redirect URL for the given state.
func (s *googleOAuthService) AuthCodeURL(state string) string {
	return s.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode trades the callback code for the Google user's email and name.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (string, string, error) {
	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("%w: code exchange failed: %v", apperrors.ErrUnauthorized, err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(s.oauthCfg.TokenSource(ctx, token)))
	if err != nil {
		return "", "", fmt.Errorf("failed to create userinfo client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	if info.Email == "" {
		return "", "", fmt.Errorf("%w: provider returned no email", apperrors.ErrUnauthorized)
	}
	return info.Email, info.Name, nil
}
