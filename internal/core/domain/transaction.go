package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records money received from the client for a project. The sum
// of a project's transactions is the single source of truth for the client
// side of the payment ledger; it is never stored independently of this list.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	ProjectID     string          `json:"projectID"`     // FK -> projects
	Amount        decimal.Decimal `json:"amount"`        // > 0
	PaymentDate   time.Time       `json:"paymentDate"`
	Description   string          `json:"description"`
	AuditFields
}
