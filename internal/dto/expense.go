package dto

import (
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records a business expense, optionally against a project.
type CreateExpenseRequest struct {
	ProjectID   *string         `json:"projectID"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Category    string          `json:"category" binding:"omitempty,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	ReceiptURL  string          `json:"receiptUrl" binding:"omitempty,url"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	ProjectID *string `form:"projectID"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	ProjectID   *string         `json:"projectID,omitempty"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	ReceiptURL  string          `json:"receiptUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   expense.ExpenseID,
		ProjectID:   expense.ProjectID,
		Description: expense.Description,
		Category:    expense.Category,
		Amount:      expense.Amount.Round(2),
		ExpenseDate: expense.ExpenseDate,
		ReceiptURL:  expense.ReceiptURL,
		CreatedAt:   expense.CreatedAt,
	}
}

// ToListExpensesResponse converts a slice of domain.Expense to ListExpensesResponse DTO.
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = ToExpenseResponse(&expense)
	}
	return ListExpensesResponse{Expenses: responses}
}
