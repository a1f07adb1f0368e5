package services

import (
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Client = NewClientService(repos.ClientRepo)
	container.Platform = NewPlatformService(repos.PlatformRepo)
	container.Collaboration = NewCollaborationService(repos.CollaborationRepo, repos.UserRepo)
	container.Project = NewProjectService(
		repos.ProjectRepo,
		repos.PlatformRepo,
		repos.UserRepo,
		container.Client,
		container.Collaboration,
	)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.ProjectRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ProjectRepo)
	container.Dashboard = NewDashboardService(repos.ProjectRepo, repos.UserRepo)

	return container
}
