package repositories

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// ExpenseReader defines read operations for business expenses
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByOwner retrieves a user's expenses, newest first. A non-nil
	// projectID narrows the list to expenses recorded against that project.
	ListExpensesByOwner(ctx context.Context, ownerID string, projectID *string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for business expenses
type ExpenseWriter interface {
	// SaveExpense inserts a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an expense by its ID.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
