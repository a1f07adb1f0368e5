package pgsql

import (
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	platformRepo := newPgxPlatformRepository(dbPool)
	collaborationRepo := newPgxCollaborationRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		ClientRepo:        clientRepo,
		PlatformRepo:      platformRepo,
		CollaborationRepo: collaborationRepo,
		ProjectRepo:       projectRepo,
		TransactionRepo:   transactionRepo,
		ExpenseRepo:       expenseRepo,
	}
}
