package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/core/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// --- Mock CollaborationRepository ---

type MockCollaborationRepository struct {
	mock.Mock
}

func (m *MockCollaborationRepository) FindCollaborationByID(ctx context.Context, collaborationID string) (*domain.Collaboration, error) {
	args := m.Called(ctx, collaborationID)
	var collaboration *domain.Collaboration
	if args.Get(0) != nil {
		collaboration = args.Get(0).(*domain.Collaboration)
	}
	return collaboration, args.Error(1)
}

func (m *MockCollaborationRepository) FindCollaborationBetween(ctx context.Context, userID string, otherUserID string) (*domain.Collaboration, error) {
	args := m.Called(ctx, userID, otherUserID)
	var collaboration *domain.Collaboration
	if args.Get(0) != nil {
		collaboration = args.Get(0).(*domain.Collaboration)
	}
	return collaboration, args.Error(1)
}

func (m *MockCollaborationRepository) ListCollaborationsByUser(ctx context.Context, userID string) ([]domain.Collaboration, error) {
	args := m.Called(ctx, userID)
	var collaborations []domain.Collaboration
	if args.Get(0) != nil {
		collaborations = args.Get(0).([]domain.Collaboration)
	}
	return collaborations, args.Error(1)
}

func (m *MockCollaborationRepository) SaveCollaboration(ctx context.Context, collaboration domain.Collaboration) error {
	args := m.Called(ctx, collaboration)
	return args.Error(0)
}

func (m *MockCollaborationRepository) UpdateCollaborationStatus(ctx context.Context, collaborationID string, status domain.CollaborationStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, collaborationID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockCollaborationRepository) DeleteCollaboration(ctx context.Context, collaborationID string) error {
	args := m.Called(ctx, collaborationID)
	return args.Error(0)
}

// --- Test Suite ---

type CollaborationServiceTestSuite struct {
	suite.Suite
	mockCollabRepo *MockCollaborationRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.CollaborationSvcFacade

	requesterID string
	partner     *domain.User
}

func (suite *CollaborationServiceTestSuite) SetupTest() {
	suite.mockCollabRepo = new(MockCollaborationRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewCollaborationService(suite.mockCollabRepo, suite.mockUserRepo)

	suite.requesterID = uuid.NewString()
	suite.partner = &domain.User{
		UserID: uuid.NewString(),
		Name:   "Ana",
		Email:  "ana@example.com",
	}
}

// --- RequestCollaboration Tests ---

func (suite *CollaborationServiceTestSuite) TestRequestCollaboration_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.partner.Email).Return(suite.partner, nil).Once()
	suite.mockCollabRepo.On("FindCollaborationBetween", ctx, suite.requesterID, suite.partner.UserID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCollabRepo.On("SaveCollaboration", ctx, mock.MatchedBy(func(c domain.Collaboration) bool {
		return c.RequesterID == suite.requesterID &&
			c.AddresseeID == suite.partner.UserID &&
			c.Status == domain.CollaborationPending
	})).Return(nil).Once()

	collaboration, err := suite.service.RequestCollaboration(ctx, dto.RequestCollaborationRequest{
		PartnerEmail: suite.partner.Email,
	}, suite.requesterID)

	suite.Require().NoError(err)
	suite.Equal(domain.CollaborationPending, collaboration.Status)
	suite.mockCollabRepo.AssertExpectations(suite.T())
}

func (suite *CollaborationServiceTestSuite) TestRequestCollaboration_Self_Fails() {
	ctx := context.Background()
	self := &domain.User{UserID: suite.requesterID, Email: "me@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, self.Email).Return(self, nil).Once()

	_, err := suite.service.RequestCollaboration(ctx, dto.RequestCollaborationRequest{
		PartnerEmail: self.Email,
	}, suite.requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CollaborationServiceTestSuite) TestRequestCollaboration_PendingLink_Duplicate() {
	ctx := context.Background()
	existing := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.partner.UserID,
		AddresseeID:     suite.requesterID,
		Status:          domain.CollaborationPending,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.partner.Email).Return(suite.partner, nil).Once()
	suite.mockCollabRepo.On("FindCollaborationBetween", ctx, suite.requesterID, suite.partner.UserID).
		Return(existing, nil).Once()

	_, err := suite.service.RequestCollaboration(ctx, dto.RequestCollaborationRequest{
		PartnerEmail: suite.partner.Email,
	}, suite.requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCollabRepo.AssertNotCalled(suite.T(), "SaveCollaboration", mock.Anything, mock.Anything)
}

func (suite *CollaborationServiceTestSuite) TestRequestCollaboration_DeclinedLink_Reopens() {
	ctx := context.Background()
	existing := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.partner.UserID,
		AddresseeID:     suite.requesterID,
		Status:          domain.CollaborationDeclined,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.partner.Email).Return(suite.partner, nil).Once()
	suite.mockCollabRepo.On("FindCollaborationBetween", ctx, suite.requesterID, suite.partner.UserID).
		Return(existing, nil).Once()
	suite.mockCollabRepo.On("DeleteCollaboration", ctx, existing.CollaborationID).Return(nil).Once()
	suite.mockCollabRepo.On("SaveCollaboration", ctx, mock.MatchedBy(func(c domain.Collaboration) bool {
		return c.Status == domain.CollaborationPending && c.RequesterID == suite.requesterID
	})).Return(nil).Once()

	collaboration, err := suite.service.RequestCollaboration(ctx, dto.RequestCollaborationRequest{
		PartnerEmail: suite.partner.Email,
	}, suite.requesterID)

	suite.Require().NoError(err)
	suite.Equal(domain.CollaborationPending, collaboration.Status)
	suite.mockCollabRepo.AssertExpectations(suite.T())
}

// --- RespondToCollaboration Tests ---

func (suite *CollaborationServiceTestSuite) TestRespondToCollaboration_Accept() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.requesterID,
		AddresseeID:     suite.partner.UserID,
		Status:          domain.CollaborationPending,
	}

	suite.mockCollabRepo.On("FindCollaborationByID", ctx, collaboration.CollaborationID).Return(collaboration, nil).Once()
	suite.mockCollabRepo.On("UpdateCollaborationStatus", ctx, collaboration.CollaborationID,
		domain.CollaborationAccepted, suite.partner.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.RespondToCollaboration(ctx, collaboration.CollaborationID, true, suite.partner.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.CollaborationAccepted, updated.Status)
	suite.mockCollabRepo.AssertExpectations(suite.T())
}

func (suite *CollaborationServiceTestSuite) TestRespondToCollaboration_RequesterCannotRespond() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.requesterID,
		AddresseeID:     suite.partner.UserID,
		Status:          domain.CollaborationPending,
	}

	suite.mockCollabRepo.On("FindCollaborationByID", ctx, collaboration.CollaborationID).Return(collaboration, nil).Once()

	_, err := suite.service.RespondToCollaboration(ctx, collaboration.CollaborationID, true, suite.requesterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CollaborationServiceTestSuite) TestRespondToCollaboration_AlreadyResolved_Conflict() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.requesterID,
		AddresseeID:     suite.partner.UserID,
		Status:          domain.CollaborationAccepted,
	}

	suite.mockCollabRepo.On("FindCollaborationByID", ctx, collaboration.CollaborationID).Return(collaboration, nil).Once()

	_, err := suite.service.RespondToCollaboration(ctx, collaboration.CollaborationID, false, suite.partner.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CollaborationServiceTestSuite) TestRespondToCollaboration_OutsiderSeesNotFound() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.requesterID,
		AddresseeID:     suite.partner.UserID,
		Status:          domain.CollaborationPending,
	}

	suite.mockCollabRepo.On("FindCollaborationByID", ctx, collaboration.CollaborationID).Return(collaboration, nil).Once()

	_, err := suite.service.RespondToCollaboration(ctx, collaboration.CollaborationID, true, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- RevokeCollaboration Tests ---

func (suite *CollaborationServiceTestSuite) TestRevokeCollaboration_EitherSideCanRevoke() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.requesterID,
		AddresseeID:     suite.partner.UserID,
		Status:          domain.CollaborationAccepted,
	}

	suite.mockCollabRepo.On("FindCollaborationByID", ctx, collaboration.CollaborationID).Return(collaboration, nil).Once()
	suite.mockCollabRepo.On("UpdateCollaborationStatus", ctx, collaboration.CollaborationID,
		domain.CollaborationRevoked, suite.partner.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RevokeCollaboration(ctx, collaboration.CollaborationID, suite.partner.UserID)

	suite.Require().NoError(err)
	suite.mockCollabRepo.AssertExpectations(suite.T())
}

// --- AreCollaborators Tests ---

func (suite *CollaborationServiceTestSuite) TestAreCollaborators_AcceptedLink() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.partner.UserID,
		AddresseeID:     suite.requesterID,
		Status:          domain.CollaborationAccepted,
	}

	suite.mockCollabRepo.On("FindCollaborationBetween", ctx, suite.requesterID, suite.partner.UserID).
		Return(collaboration, nil).Once()

	linked, err := suite.service.AreCollaborators(ctx, suite.requesterID, suite.partner.UserID)

	suite.Require().NoError(err)
	suite.True(linked)
}

func (suite *CollaborationServiceTestSuite) TestAreCollaborators_PendingLinkDoesNotCount() {
	ctx := context.Background()
	collaboration := &domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     suite.requesterID,
		AddresseeID:     suite.partner.UserID,
		Status:          domain.CollaborationPending,
	}

	suite.mockCollabRepo.On("FindCollaborationBetween", ctx, suite.requesterID, suite.partner.UserID).
		Return(collaboration, nil).Once()

	linked, err := suite.service.AreCollaborators(ctx, suite.requesterID, suite.partner.UserID)

	suite.Require().NoError(err)
	suite.False(linked)
}

func (suite *CollaborationServiceTestSuite) TestAreCollaborators_NoLink() {
	ctx := context.Background()
	otherID := uuid.NewString()

	suite.mockCollabRepo.On("FindCollaborationBetween", ctx, suite.requesterID, otherID).
		Return(nil, apperrors.ErrNotFound).Once()

	linked, err := suite.service.AreCollaborators(ctx, suite.requesterID, otherID)

	suite.Require().NoError(err)
	suite.False(linked)
}

func TestCollaborationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CollaborationServiceTestSuite))
}
