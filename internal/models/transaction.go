package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	ProjectID     string          `db:"project_id"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentDate   time.Time       `db:"payment_date"`
	Description   string          `db:"description"`
	AuditFields
}
