package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost the user incurred running their business. It can be tied
// to a project or stand alone as a general business expense (nil ProjectID).
// Expenses are private to the user who recorded them and never feed the
// project's payment ledger.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`           // Primary Key (UUID)
	ProjectID   *string         `json:"projectID,omitempty"` // FK -> projects, optional
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"` // e.g. "Software", "Hosting"
	Amount      decimal.Decimal `json:"amount"`             // > 0
	ExpenseDate time.Time       `json:"expenseDate"`
	ReceiptURL  string          `json:"receiptUrl,omitempty"`
	AuditFields
}
