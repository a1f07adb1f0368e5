package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/core/services"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockProjectRepo *MockProjectRepository
	mockUserRepo    *MockUserReader
	service         portssvc.DashboardSvcFacade
	userID          string
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewDashboardService(suite.mockProjectRepo, suite.mockUserRepo)
	suite.userID = uuid.NewString()
}

// dashboardProject builds a project owned by the suite user with a 1000
// budget and no platform cut, so the owner's expectation is the full budget.
func (suite *DashboardServiceTestSuite) dashboardProject(status domain.ProjectStatus) domain.Project {
	return domain.Project{
		ProjectID:                 uuid.NewString(),
		OwnerID:                   suite.userID,
		ClientID:                  uuid.NewString(),
		Name:                      "Landing page",
		Budget:                    decimal.NewFromInt(1000),
		PlatformCommissionPercent: decimal.Zero,
		OwnerCommissionValue:      decimal.Zero,
		Status:                    status,
		PaymentDetails:            domain.NewPaymentDetails(),
		Version:                   1,
	}
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_AggregatesAcrossProjects() {
	ctx := context.Background()
	now := time.Now()

	active := suite.dashboardProject(domain.StatusInProgress)
	deadline := now.Add(48 * time.Hour)
	active.Deadline = &deadline

	completed := suite.dashboardProject(domain.StatusCompleted)
	completed.PaymentDetails = completed.PaymentDetails.WithOwnerReceipt(decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	completed.LastUpdatedAt = now

	archived := suite.dashboardProject(domain.StatusArchived)

	suite.mockProjectRepo.On("ListProjectsForUser", ctx, suite.userID, mock.AnythingOfType("repositories.ProjectListFilter")).
		Return([]domain.Project{active, completed, archived}, int64(3), nil).Once()
	suite.mockProjectRepo.On("FindSharesByProjectIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.ProjectShare{}, nil).Once()

	dashboard, err := suite.service.GetDashboard(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, dashboard.ActiveProjects)
	// The active project still owes the full 1000; the completed one is fully
	// received and the archived one is excluded.
	suite.True(dashboard.TotalToReceive.Equal(decimal.NewFromInt(1000)))
	suite.True(dashboard.MonthProfit.Equal(decimal.NewFromInt(1000)))

	suite.Require().Len(dashboard.UpcomingDeadlines, 1)
	suite.Equal(active.ProjectID, dashboard.UpcomingDeadlines[0].ProjectID)

	suite.Require().Len(dashboard.RecentlyCompleted, 1)
	suite.Equal(completed.ProjectID, dashboard.RecentlyCompleted[0].ProjectID)
	suite.True(dashboard.RecentlyCompleted[0].AmountReceived.Equal(decimal.NewFromInt(1000)))

	suite.Require().Len(dashboard.MonthlyProfitChart, 6)
	latest := dashboard.MonthlyProfitChart[5]
	suite.Equal(now.Format("2006-01"), latest.Month)
	suite.True(latest.Profit.Equal(decimal.NewFromInt(1000)))

	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_PartnerViewpoint() {
	ctx := context.Background()

	// The suite user is a 20% partner on someone else's project, not its owner.
	project := suite.dashboardProject(domain.StatusInProgress)
	project.OwnerID = uuid.NewString()
	share := domain.ProjectShare{
		ShareID:         uuid.NewString(),
		ProjectID:       project.ProjectID,
		PartnerID:       suite.userID,
		CommissionType:  domain.CommissionPercentage,
		CommissionValue: decimal.NewFromInt(20),
		Permissions:     domain.PermissionRead,
		PaymentStatus:   domain.PartialPaid,
		AmountPaid:      decimal.NewFromInt(50),
	}

	suite.mockProjectRepo.On("ListProjectsForUser", ctx, suite.userID, mock.AnythingOfType("repositories.ProjectListFilter")).
		Return([]domain.Project{project}, int64(1), nil).Once()
	suite.mockProjectRepo.On("FindSharesByProjectIDs", ctx, mock.AnythingOfType("[]string")).
		Return(map[string][]domain.ProjectShare{project.ProjectID: {share}}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).
		Return(&domain.User{UserID: suite.userID, Name: "Ana"}, nil).Once()

	dashboard, err := suite.service.GetDashboard(ctx, suite.userID)

	suite.Require().NoError(err)
	// 20% of the 1000 budget is 200; 50 already received leaves 150.
	suite.True(dashboard.TotalToReceive.Equal(decimal.NewFromInt(150)))
	suite.Equal(1, dashboard.ActiveProjects)
	suite.Empty(dashboard.RecentlyCompleted)
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_ListError() {
	ctx := context.Background()

	suite.mockProjectRepo.On("ListProjectsForUser", ctx, suite.userID, mock.AnythingOfType("repositories.ProjectListFilter")).
		Return(nil, int64(0), assert.AnError).Once()

	dashboard, err := suite.service.GetDashboard(ctx, suite.userID)

	suite.Error(err)
	suite.Nil(dashboard)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
