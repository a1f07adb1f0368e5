package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row of the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	ProjectID   *string         `db:"project_id"`
	Description string          `db:"description"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	ExpenseDate time.Time       `db:"expense_date"`
	ReceiptURL  string          `db:"receipt_url"`
	AuditFields
}
