package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/core/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SumTransactionsByProject(ctx context.Context, projectID string) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error {
	args := m.Called(ctx, txn, expectedVersion)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, projectID string, transactionID string, expectedVersion int64, deletedByUserID string, deletedAt time.Time) error {
	args := m.Called(ctx, projectID, transactionID, expectedVersion, deletedByUserID, deletedAt)
	return args.Error(0)
}

// --- Test Suite ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.TransactionSvcFacade

	ownerID   string
	partnerID string
	project   *domain.Project
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockProjectRepo)

	suite.ownerID = uuid.NewString()
	suite.partnerID = uuid.NewString()
	suite.project = &domain.Project{
		ProjectID:      uuid.NewString(),
		OwnerID:        suite.ownerID,
		Budget:         decimal.NewFromInt(1000),
		Status:         domain.StatusInProgress,
		PaymentDetails: domain.NewPaymentDetails(),
		Version:        2,
	}
}

// --- CreateTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	paymentDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ProjectID == suite.project.ProjectID &&
			txn.Amount.Equal(decimal.NewFromInt(400)) &&
			txn.PaymentDate.Equal(paymentDate) &&
			txn.TransactionID != ""
	}), suite.project.Version).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.project.ProjectID, dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(400),
		PaymentDate: paymentDate,
		Description: "first installment",
	}, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(suite.ownerID, txn.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount_Fails() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.project.ProjectID, dto.CreateTransactionRequest{
		Amount:      decimal.Zero,
		PaymentDate: time.Now(),
	}, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReadPartnerIsForbidden() {
	ctx := context.Background()
	share := &domain.ProjectShare{
		ShareID:     uuid.NewString(),
		ProjectID:   suite.project.ProjectID,
		PartnerID:   suite.partnerID,
		Permissions: domain.PermissionRead,
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindShareByProjectAndPartner", ctx, suite.project.ProjectID, suite.partnerID).Return(share, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.project.ProjectID, dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	}, suite.partnerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_EditPartnerIsAllowed() {
	ctx := context.Background()
	share := &domain.ProjectShare{
		ShareID:     uuid.NewString(),
		ProjectID:   suite.project.ProjectID,
		PartnerID:   suite.partnerID,
		Permissions: domain.PermissionEdit,
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindShareByProjectAndPartner", ctx, suite.project.ProjectID, suite.partnerID).Return(share, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ProjectID == suite.project.ProjectID && txn.CreatedBy == suite.partnerID
	}), suite.project.Version).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.project.ProjectID, dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	}, suite.partnerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OutsiderSeesNotFound() {
	ctx := context.Background()
	outsiderID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindShareByProjectAndPartner", ctx, suite.project.ProjectID, outsiderID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.project.ProjectID, dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	}, outsiderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_StaleVersion_Conflict() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), suite.project.Version).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.project.ProjectID, dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	}, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- DeleteTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ProjectID:     suite.project.ProjectID,
		Amount:        decimal.NewFromInt(400),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.project.ProjectID, txn.TransactionID,
		suite.project.Version, suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.project.ProjectID, txn.TransactionID, suite.ownerID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_WrongProject_NotFound() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		ProjectID:     uuid.NewString(),
		Amount:        decimal.NewFromInt(400),
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.project.ProjectID, txn.TransactionID, suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListTransactionsByProject Tests ---

func (suite *TransactionServiceTestSuite) TestListTransactions_PartnerCanList() {
	ctx := context.Background()
	share := &domain.ProjectShare{
		ShareID:   uuid.NewString(),
		ProjectID: suite.project.ProjectID,
		PartnerID: suite.partnerID,
	}
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), ProjectID: suite.project.ProjectID, Amount: decimal.NewFromInt(400)},
	}
	token := "b64token"

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindShareByProjectAndPartner", ctx, suite.project.ProjectID, suite.partnerID).Return(share, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByProject", ctx, suite.project.ProjectID, 10, (*string)(nil)).
		Return(txns, &token, nil).Once()

	resp, err := suite.service.ListTransactionsByProject(ctx, suite.project.ProjectID, suite.partnerID, dto.ListTransactionsParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_OutsiderSeesNotFound() {
	ctx := context.Background()
	outsiderID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindShareByProjectAndPartner", ctx, suite.project.ProjectID, outsiderID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListTransactionsByProject(ctx, suite.project.ProjectID, outsiderID, dto.ListTransactionsParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
