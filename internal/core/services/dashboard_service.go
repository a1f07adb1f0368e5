package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/utils/settlement"
)

const (
	dashboardProjectCap  = 500
	dashboardListSize    = 5
	dashboardChartMonths = 6
)

// dashboardService aggregates the user's financial position. Every money
// figure goes through the settlement calculator with the requesting user as
// the viewer; nothing is recomputed inline.
type dashboardService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(projectRepo portsrepo.ProjectRepositoryFacade, userRepo portsrepo.UserReader) portssvc.DashboardSvcFacade {
	return &dashboardService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// Ensure dashboardService implements the portssvc.DashboardSvcFacade interface
var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func (s *dashboardService) GetDashboard(ctx context.Context, requestingUserID string) (*dto.DashboardResponse, error) {
	projects, _, err := s.projectRepo.ListProjectsForUser(ctx, requestingUserID, portsrepo.ProjectListFilter{
		Limit: dashboardProjectCap,
	})
	if err != nil {
		return nil, err
	}

	projectIDs := make([]string, len(projects))
	for i, project := range projects {
		projectIDs[i] = project.ProjectID
	}
	sharesByProject, err := s.projectRepo.FindSharesByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	currentMonth := monthKey(now)
	chartStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(dashboardChartMonths - 1), 0)

	monthProfit := decimal.Zero
	totalToReceive := decimal.Zero
	activeProjects := 0
	profitByMonth := make(map[string]decimal.Decimal)
	var deadlines []dto.UpcomingDeadline
	var completed []dto.CompletedProject

	names := make(map[string]string)
	for i := range projects {
		project := projects[i]
		shares := sharesByProject[project.ProjectID]

		for _, share := range shares {
			if _, ok := names[share.PartnerID]; !ok {
				if user, err := s.userRepo.FindUserByID(ctx, share.PartnerID); err == nil {
					names[share.PartnerID] = user.Name
				} else {
					names[share.PartnerID] = ""
				}
			}
		}

		computed, err := settlement.Compute(project, shares, names, requestingUserID)
		if err != nil {
			return nil, err
		}

		if project.Status == domain.StatusInProgress {
			activeProjects++
		}

		if project.Status != domain.StatusArchived {
			totalToReceive = totalToReceive.Add(computed.YourRemainingToReceive)
		}

		if project.Deadline != nil && project.Deadline.After(now) &&
			project.Status != domain.StatusCompleted && project.Status != domain.StatusArchived {
			deadlines = append(deadlines, dto.UpcomingDeadline{
				ProjectID: project.ProjectID,
				Name:      project.Name,
				Deadline:  *project.Deadline,
				Status:    string(project.Status),
			})
		}

		if project.Status == domain.StatusCompleted {
			// The completion timestamp is the last update that set the status.
			completedAt := project.LastUpdatedAt
			received := computed.YourAmountReceived.Round(2)

			completed = append(completed, dto.CompletedProject{
				ProjectID:      project.ProjectID,
				Name:           project.Name,
				CompletedAt:    completedAt,
				AmountReceived: received,
			})

			if monthKey(completedAt) == currentMonth {
				monthProfit = monthProfit.Add(computed.YourAmountReceived)
			}
			if !completedAt.Before(chartStart) {
				key := monthKey(completedAt)
				profitByMonth[key] = profitByMonth[key].Add(computed.YourAmountReceived)
			}
		}
	}

	sort.Slice(deadlines, func(i, j int) bool {
		return deadlines[i].Deadline.Before(deadlines[j].Deadline)
	})
	if len(deadlines) > dashboardListSize {
		deadlines = deadlines[:dashboardListSize]
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CompletedAt.After(completed[j].CompletedAt)
	})
	if len(completed) > dashboardListSize {
		completed = completed[:dashboardListSize]
	}

	// Emit a contiguous six-month series, zero-filled.
	chart := make([]dto.MonthlyProfitPoint, 0, dashboardChartMonths)
	for i := 0; i < dashboardChartMonths; i++ {
		month := chartStart.AddDate(0, i, 0)
		key := monthKey(month)
		chart = append(chart, dto.MonthlyProfitPoint{
			Month:  key,
			Profit: profitByMonth[key].Round(2),
		})
	}

	return &dto.DashboardResponse{
		MonthProfit:        monthProfit.Round(2),
		TotalToReceive:     totalToReceive.Round(2),
		ActiveProjects:     activeProjects,
		UpcomingDeadlines:  deadlines,
		RecentlyCompleted:  completed,
		MonthlyProfitChart: chart,
	}, nil
}
