package mapping

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		ProjectID:   m.ProjectID,
		Description: m.Description,
		Category:    m.Category,
		Amount:      m.Amount,
		ExpenseDate: m.ExpenseDate,
		ReceiptURL:  m.ReceiptURL,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		ProjectID:   d.ProjectID,
		Description: d.Description,
		Category:    d.Category,
		Amount:      d.Amount,
		ExpenseDate: d.ExpenseDate,
		ReceiptURL:  d.ReceiptURL,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
