package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/handlers"
	"github.com/gestorlab/freela_backend/internal/middleware"
)

// --- Mock ProjectService ---

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, projectID string, requestingUserID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) GetProjectSummary(ctx context.Context, projectID string, requestingUserID string) (*dto.ProjectSummaryResponse, error) {
	args := m.Called(ctx, projectID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProjectSummaryResponse), args.Error(1)
}
func (m *MockProjectService) ListProjects(ctx context.Context, requestingUserID string, params dto.ListProjectsParams) (*dto.ListProjectsResponse, error) {
	args := m.Called(ctx, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListProjectsResponse), args.Error(1)
}
func (m *MockProjectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) DeleteProject(ctx context.Context, projectID string, requestingUserID string) error {
	args := m.Called(ctx, projectID, requestingUserID)
	return args.Error(0)
}
func (m *MockProjectService) RegisterUserReceipt(ctx context.Context, projectID string, req dto.RegisterReceiptRequest, requestingUserID string) (*dto.ProjectSummaryResponse, error) {
	args := m.Called(ctx, projectID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProjectSummaryResponse), args.Error(1)
}
func (m *MockProjectService) AttachPartner(ctx context.Context, projectID string, req dto.AttachPartnerRequest, requestingUserID string) (*domain.ProjectShare, error) {
	args := m.Called(ctx, projectID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectShare), args.Error(1)
}
func (m *MockProjectService) UpdatePartnerShare(ctx context.Context, projectID string, partnerID string, req dto.UpdateShareRequest, requestingUserID string) (*domain.ProjectShare, error) {
	args := m.Called(ctx, projectID, partnerID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectShare), args.Error(1)
}
func (m *MockProjectService) DetachPartner(ctx context.Context, projectID string, partnerID string, requestingUserID string) error {
	args := m.Called(ctx, projectID, partnerID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ProjectSvcFacade = (*MockProjectService)(nil)

// --- Mock TransactionService ---

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, projectID string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, projectID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, projectID string, transactionID string, requestingUserID string) error {
	args := m.Called(ctx, projectID, transactionID, requestingUserID)
	return args.Error(0)
}
func (m *MockTransactionService) ListTransactionsByProject(ctx context.Context, projectID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, projectID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---

type ProjectHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockProjectService     *MockProjectService
	mockTransactionService *MockTransactionService
	jwtSecret              string
}

func (suite *ProjectHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "freela-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ProjectHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockProjectService = new(MockProjectService)
	suite.mockTransactionService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterProjectRoutes(v1, suite.mockProjectService, suite.mockTransactionService)
}

func (suite *ProjectHandlerTestSuite) doRequest(method, url, userID string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ProjectHandlerTestSuite) TestGetProjectSummary_Success() {
	projectID := uuid.NewString()
	userID := uuid.NewString()

	summary := &dto.ProjectSummaryResponse{
		Project: dto.ProjectResponse{ProjectID: projectID, Name: "Landing page", Budget: decimal.NewFromInt(1000)},
		Settlement: dto.SettlementResponse{
			YourTotalToReceive: decimal.NewFromInt(720),
			PlatformFee:        decimal.NewFromInt(100),
		},
	}
	suite.mockProjectService.On("GetProjectSummary", mock.Anything, projectID, userID).Return(summary, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/projects/"+projectID+"/summary", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProjectSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(projectID, resp.Project.ProjectID)
	suite.True(resp.Settlement.YourTotalToReceive.Equal(decimal.NewFromInt(720)))
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	projectID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockProjectService.On("GetProjectByID", mock.Anything, projectID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/projects/"+projectID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/projects/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	userID := uuid.NewString()
	clientID := uuid.NewString()
	body := dto.CreateProjectRequest{
		Name:     "Landing page",
		Budget:   decimal.NewFromInt(1000),
		ClientID: &clientID,
	}
	created := &domain.Project{
		ProjectID:      uuid.NewString(),
		OwnerID:        userID,
		ClientID:       clientID,
		Name:           "Landing page",
		Budget:         decimal.NewFromInt(1000),
		Status:         domain.StatusDraft,
		PaymentDetails: domain.NewPaymentDetails(),
		Version:        1,
	}

	suite.mockProjectService.On("CreateProject", mock.Anything, mock.MatchedBy(func(req dto.CreateProjectRequest) bool {
		return req.Name == "Landing page" && req.ClientID != nil && *req.ClientID == clientID
	}), userID).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects", userID, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProjectResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ProjectID, resp.ProjectID)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_ClientSelectionError() {
	userID := uuid.NewString()
	body := dto.CreateProjectRequest{
		Name:   "Landing page",
		Budget: decimal.NewFromInt(1000),
	}

	suite.mockProjectService.On("CreateProject", mock.Anything, mock.AnythingOfType("dto.CreateProjectRequest"), userID).
		Return(nil, fmt.Errorf("exactly one of clientID and newClient must be provided: %w", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects", userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_Conflict() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	name := "Renamed"
	body := dto.UpdateProjectRequest{Name: &name}

	suite.mockProjectService.On("UpdateProject", mock.Anything, projectID, mock.AnythingOfType("dto.UpdateProjectRequest"), userID).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/projects/"+projectID, userID, body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestAttachPartner_CollaborationGate() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	body := dto.AttachPartnerRequest{
		PartnerID:       uuid.NewString(),
		CommissionType:  "percentage",
		CommissionValue: decimal.NewFromInt(20),
	}

	suite.mockProjectService.On("AttachPartner", mock.Anything, projectID, mock.AnythingOfType("dto.AttachPartnerRequest"), userID).
		Return(nil, fmt.Errorf("%w: an accepted collaboration with the partner is required", apperrors.ErrForbidden)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/partners", userID, body)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestRegisterReceipt_Success() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	amount := decimal.NewFromInt(300)
	body := dto.RegisterReceiptRequest{Amount: &amount}

	summary := &dto.ProjectSummaryResponse{
		Project: dto.ProjectResponse{ProjectID: projectID},
		Settlement: dto.SettlementResponse{
			YourAmountReceived: decimal.NewFromInt(300),
		},
	}
	suite.mockProjectService.On("RegisterUserReceipt", mock.Anything, projectID,
		mock.MatchedBy(func(req dto.RegisterReceiptRequest) bool {
			return req.Amount != nil && req.Amount.Equal(amount) && !req.IsFullPayment
		}), userID).Return(summary, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/receipts", userID, body)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestDetachPartner_NoContent() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	partnerID := uuid.NewString()

	suite.mockProjectService.On("DetachPartner", mock.Anything, projectID, partnerID, userID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/projects/"+projectID+"/partners/"+partnerID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	token := "next-page"

	resp := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), ProjectID: projectID, Amount: decimal.NewFromInt(400)},
		},
		NextToken: &token,
	}
	suite.mockTransactionService.On("ListTransactionsByProject", mock.Anything, projectID, userID,
		mock.MatchedBy(func(params dto.ListTransactionsParams) bool {
			return params.Limit == 10
		})).Return(resp, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/projects/%s/transactions?limit=%d", projectID, 10), userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().NotNil(body.NextToken)
	suite.Equal(token, *body.NextToken)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestCreateTransaction_OwnerOnly() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	body := dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now().UTC(),
	}

	suite.mockTransactionService.On("CreateTransaction", mock.Anything, projectID, mock.AnythingOfType("dto.CreateTransactionRequest"), userID).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/projects/"+projectID+"/transactions", userID, body)

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
