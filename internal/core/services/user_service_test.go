package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/core/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/utils"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiryTime *time.Time, updatedAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiryTime, updatedAt)
	return args.Error(0)
}

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- RegisterUser Tests ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	password := "password123"

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "ana@example.com" &&
			user.Name == "Ana" &&
			user.AuthProvider == "local" &&
			user.PasswordHash != "" &&
			user.PasswordHash != password
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Ana",
		Email:    "  Ana@Example.COM ", // normalized on the way in
		Password: password,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("ana@example.com", user.Email)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password123",
	})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(expectedErr).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password123",
	})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, expectedErr)
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "ana@example.com", password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "ana@example.com", "wrong")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailHidesExistence() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_GoogleOnlyAccount() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", AuthProvider: "google"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "ana@example.com", "anything")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- FindOrCreateGoogleUser Tests ---

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingUser() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", AuthProvider: "google"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, nil).Once()

	found, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		Email:         "Ana@example.com",
		VerifiedEmail: true,
		Name:          "Ana",
	})

	suite.Require().NoError(err)
	suite.Equal(user.UserID, found.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesNewUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "ana@example.com" && user.AuthProvider == "google" && user.PasswordHash == ""
	})).Return(nil).Once()

	created, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		Email:         "ana@example.com",
		VerifiedEmail: true,
		Name:          "Ana",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(created.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_UnverifiedEmail() {
	ctx := context.Background()

	created, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{
		Email:         "ana@example.com",
		VerifiedEmail: false,
	})

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- UpdateUser Tests ---

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Name: "Ana", Email: "ana@example.com"}
	newName := "Ana Clara"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.Name == newName
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
