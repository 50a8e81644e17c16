package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/core/services"
	"github.com/vyapaarhq/ledger_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) userWithPassword(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Username:     "operator",
		Email:        "operator@example.com",
		PasswordHash: hash,
	}
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	user := suite.userWithPassword("s3cret-pass")
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "operator").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(suite.ctx, "operator", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	user := suite.userWithPassword("s3cret-pass")
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "operator").Return(user, nil).Once()

	_, err := suite.service.AuthenticateUser(suite.ctx, "operator", "wrong-pass")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(suite.ctx, "ghost", "whatever")

	// Unknown usernames and bad passwords look the same to the caller.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestEnsureBootstrapUser_AlreadyExists() {
	existing := suite.userWithPassword("s3cret-pass")
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "operator").Return(existing, nil).Once()

	user, err := suite.service.EnsureBootstrapUser(suite.ctx, "operator", "operator@example.com", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestEnsureBootstrapUser_CreatesUser() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "operator").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(domain.User)
			suite.NotEmpty(user.UserID)
			suite.Equal("operator", user.Username)
			suite.True(utils.CheckPasswordHash("s3cret-pass", user.PasswordHash))
			suite.Equal("system", user.CreatedBy)
		}).
		Return(nil).Once()

	user, err := suite.service.EnsureBootstrapUser(suite.ctx, "operator", "operator@example.com", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal("operator", user.Username)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureBootstrapUser_LostRaceRefetches() {
	winner := suite.userWithPassword("s3cret-pass")
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "operator").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "operator").Return(winner, nil).Once()

	user, err := suite.service.EnsureBootstrapUser(suite.ctx, "operator", "operator@example.com", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal(winner.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestUpdateRefreshToken_PassesExpiry() {
	userID := uuid.NewString()
	expiry := time.Now().UTC().Add(24 * time.Hour)
	suite.mockUserRepo.On("UpdateRefreshToken", suite.ctx, userID, "hash-value", &expiry).Return(nil).Once()

	err := suite.service.UpdateRefreshToken(suite.ctx, userID, "hash-value", expiry)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestClearRefreshToken_NilsOutExpiry() {
	userID := uuid.NewString()
	suite.mockUserRepo.On("UpdateRefreshToken", suite.ctx, userID, "", (*time.Time)(nil)).Return(nil).Once()

	err := suite.service.ClearRefreshToken(suite.ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
