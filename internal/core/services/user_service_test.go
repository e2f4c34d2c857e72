package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ikicamilo/oceanre-backend/internal/apperrors"
	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
	portsrepo "github.com/ikicamilo/oceanre-backend/internal/core/ports/repositories"
	portssvc "github.com/ikicamilo/oceanre-backend/internal/core/ports/services"
	"github.com/ikicamilo/oceanre-backend/internal/core/services"
	"github.com/ikicamilo/oceanre-backend/internal/dto"
	"github.com/ikicamilo/oceanre-backend/internal/utils"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time, at time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt, at)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, userID, deletedBy, at)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	creatorID    string
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo)
	s.creatorID = uuid.NewString()
}

func (s *UserServiceTestSuite) TestCreateUserDefaultsToSalesRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse battery staple",
	}

	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.CreateUser(ctx, req, s.creatorID)

	s.Require().NoError(err)
	s.Equal(domain.RoleSales, user.Role)
	s.NotEqual(req.Password, user.PasswordHash)
	s.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUserUnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "pw",
		Role:     domain.UserRole("SUPERVISOR"),
	}

	_, err := s.service.CreateUser(ctx, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUserDuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "pw",
		Role:     domain.RoleAccountant,
	}

	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateUser(ctx, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestAuthenticateUserSuccess() {
	ctx := context.Background()
	password := "secret-password"
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)

	stored := domain.User{
		UserID:       uuid.NewString(),
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	s.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(&stored, nil).Once()

	user, err := s.service.AuthenticateUser(ctx, stored.Email, password)

	s.Require().NoError(err)
	s.Equal(stored.UserID, user.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticateUserWrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the real password")
	s.Require().NoError(err)

	stored := domain.User{
		UserID:       uuid.NewString(),
		Email:        "ana@example.com",
		PasswordHash: hash,
	}
	s.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(&stored, nil).Once()

	_, err = s.service.AuthenticateUser(ctx, stored.Email, "a guess")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthenticateUserUnknownEmail() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.AuthenticateUser(ctx, "nobody@example.com", "pw")

	s.Require().Error(err)
	// Indistinguishable from a wrong password.
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestFindOrCreateOAuthUserExisting() {
	ctx := context.Background()
	stored := domain.User{
		UserID: uuid.NewString(),
		Email:  "ana@example.com",
		Role:   domain.RoleAccountant,
	}
	s.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(&stored, nil).Once()

	user, err := s.service.FindOrCreateOAuthUser(ctx, stored.Email, "Ana")

	s.Require().NoError(err)
	s.Equal(stored.UserID, user.UserID)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestFindOrCreateOAuthUserProvisions() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.FindOrCreateOAuthUser(ctx, "new@example.com", "New Person")

	s.Require().NoError(err)
	s.Equal(domain.RoleSales, user.Role)
	s.NotEmpty(user.PasswordHash)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestDeleteUserSoftDeletes() {
	ctx := context.Background()
	stored := domain.User{UserID: uuid.NewString()}

	s.mockUserRepo.On("FindUserByID", ctx, stored.UserID).Return(&stored, nil).Once()
	s.mockUserRepo.On("MarkUserDeleted", ctx, stored.UserID, s.creatorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeleteUser(ctx, stored.UserID, s.creatorID)

	s.Require().NoError(err)
	s.mockUserRepo.AssertExpectations(s.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
