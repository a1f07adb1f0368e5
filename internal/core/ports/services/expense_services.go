package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for business expenses
type ExpenseReaderSvc interface {
	// ListExpenses retrieves the requesting user's expenses, optionally
	// filtered by project.
	ListExpenses(ctx context.Context, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for business expenses
type ExpenseWriterSvc interface {
	// CreateExpense records an expense for the requesting user. When the
	// request names a project, the user must be a stakeholder on it.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense removes one of the requesting user's expenses.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
