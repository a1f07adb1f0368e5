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

var ErrNonPositiveExpense = errors.New("expense amount must be positive")

// expenseService tracks business costs. Expenses are private to the user who
// recorded them; a project link only categorizes the cost and never touches
// the project's payment ledger.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// checkProjectStake verifies the user owns or is shared on the project, so an
// expense cannot be filed against someone else's project.
func (s *expenseService) checkProjectStake(ctx context.Context, projectID string, userID string) error {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID == userID {
		return nil
	}
	if _, err := s.projectRepo.FindShareByProjectAndPartner(ctx, projectID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveExpense)
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		if err := s.checkProjectStake(ctx, *req.ProjectID, requestingUserID); err != nil {
			return nil, err
		}
	} else {
		// Normalize the empty string so a blank link is stored as no link.
		req.ProjectID = nil
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
		ReceiptURL:  req.ReceiptURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, err
	}

	logger.Info("Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("user_id", requestingUserID),
	)
	return &expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	expenses, err := s.expenseRepo.ListExpensesByOwner(ctx, requestingUserID, params.ProjectID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToListExpensesResponse(expenses)
	return &resp, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	// Someone else's expense looks like a missing one.
	if expense.CreatedBy != requestingUserID {
		return apperrors.ErrNotFound
	}
	return s.expenseRepo.DeleteExpense(ctx, expenseID)
}
