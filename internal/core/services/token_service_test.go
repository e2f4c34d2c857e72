package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/core/services"
	"github.com/ikicamilo/oceanre-backend/internal/platform/config"
	"github.com/ikicamilo/oceanre-backend/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.TokenSvcFacade
	cfg          *config.Config
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.cfg = &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "oceanre-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	s.service = services.NewTokenService(s.cfg, s.mockUserRepo)
}

func (s *TokenServiceTestSuite) userWithRefreshToken(token string, expiry time.Time) *domain.User {
	return &domain.User{
		UserID:                 uuid.NewString(),
		Name:                   "Jordan",
		Email:                  "jordan@example.com",
		Role:                   domain.RoleAccountant,
		RefreshTokenHash:       utils.HashRefreshToken(token),
		RefreshTokenExpiryTime: &expiry,
	}
}

func (s *TokenServiceTestSuite) TestGenerateAccessTokenRoundTrips() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	token, expiresAt, err := s.service.GenerateAccessToken(ctx, user)

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	s.Require().NoError(err)
	s.Equal(user.UserID, claims.Subject)
	s.Equal(string(domain.RoleAdmin), claims.Role)
}

func (s *TokenServiceTestSuite) TestValidateRefreshTokenSuccess() {
	ctx := context.Background()
	raw := "opaque-refresh-token"
	user := s.userWithRefreshToken(raw, time.Now().UTC().Add(time.Hour))

	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := s.service.ValidateRefreshToken(ctx, user.UserID, raw)

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *TokenServiceTestSuite) TestValidateRefreshTokenWithoutStoredHash() {
	ctx := context.Background()
	user := &domain.User{
		UserID: uuid.NewString(),
		Role:   domain.RoleSales,
	}

	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := s.service.ValidateRefreshToken(ctx, user.UserID, "anything")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestValidateRefreshTokenExpired() {
	ctx := context.Background()
	raw := "opaque-refresh-token"
	user := s.userWithRefreshToken(raw, time.Now().UTC().Add(-time.Minute))

	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := s.service.ValidateRefreshToken(ctx, user.UserID, raw)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (s *TokenServiceTestSuite) TestValidateRefreshTokenMismatch() {
	ctx := context.Background()
	user := s.userWithRefreshToken("the-real-token", time.Now().UTC().Add(time.Hour))

	s.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := s.service.ValidateRefreshToken(ctx, user.UserID, "a-stolen-guess")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestValidateRefreshTokenUnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	s.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ValidateRefreshToken(ctx, userID, "anything")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
