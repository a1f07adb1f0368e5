package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project represents a row of the projects table. PaymentDetails is the raw
// JSONB document; it is decoded into the structured domain ledger in mapping.
type Project struct {
	ProjectID                 string          `db:"project_id"`
	OwnerID                   string          `db:"owner_id"`
	ClientID                  string          `db:"client_id"`
	Name                      string          `db:"name"`
	Description               string          `db:"description"`
	Budget                    decimal.Decimal `db:"budget"`
	PlatformID                *string         `db:"platform_id"`
	PlatformCommissionPercent decimal.Decimal `db:"platform_commission_percent"`
	OwnerCommissionType       *string         `db:"owner_commission_type"`
	OwnerCommissionValue      decimal.Decimal `db:"owner_commission_value"`
	Deadline                  *time.Time      `db:"deadline"`
	Status                    string          `db:"status"`
	PaymentDetails            []byte          `db:"payment_details"`
	Version                   int64           `db:"version"`
	AuditFields
}
