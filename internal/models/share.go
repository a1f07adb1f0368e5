package models

import "github.com/shopspring/decimal"

// ProjectShare represents a row of the project_shares table.
type ProjectShare struct {
	ShareID         string          `db:"share_id"`
	ProjectID       string          `db:"project_id"`
	PartnerID       string          `db:"partner_id"`
	CommissionType  string          `db:"commission_type"`
	CommissionValue decimal.Decimal `db:"commission_value"`
	Permissions     string          `db:"permissions"`
	PaymentStatus   string          `db:"payment_status"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	AuditFields
}
