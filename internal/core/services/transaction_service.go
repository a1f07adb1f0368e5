package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/middleware"
)

var ErrNonPositiveAmount = errors.New("payment amount must be positive")

// transactionService records and lists client payments. All ledger rewriting
// happens inside the repository, under the project row lock, so the client
// ledger always equals the sum of the surviving transactions.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	projectRepo     portsrepo.ProjectRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// loadProject fetches the project and checks the viewer against it. Any
// stakeholder may read; writes additionally require ownership or a share
// whose permissions grant edit. Outsiders get not-found either way.
func (s *transactionService) loadProject(ctx context.Context, projectID string, userID string, write bool) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID == userID {
		return project, nil
	}
	share, err := s.projectRepo.FindShareByProjectAndPartner(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if write && share.Permissions != domain.PermissionEdit {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, projectID string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.loadProject(ctx, projectID, requestingUserID, true)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ProjectID:     projectID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, project.Version); err != nil {
		return nil, err
	}

	logger.Info("Client payment recorded",
		slog.String("project_id", projectID),
		slog.String("transaction_id", txn.TransactionID),
	)
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, projectID string, transactionID string, requestingUserID string) error {
	project, err := s.loadProject(ctx, projectID, requestingUserID, true)
	if err != nil {
		return err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.ProjectID != projectID {
		return apperrors.ErrNotFound
	}

	return s.transactionRepo.DeleteTransaction(ctx, projectID, transactionID, project.Version, requestingUserID, time.Now())
}

func (s *transactionService) ListTransactionsByProject(ctx context.Context, projectID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.loadProject(ctx, projectID, requestingUserID, false); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByProject(ctx, projectID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
