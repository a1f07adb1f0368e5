package models

import "github.com/shopspring/decimal"

// Platform represents a row of the platforms table.
type Platform struct {
	PlatformID               string          `db:"platform_id"`
	Name                     string          `db:"name"`
	LogoURL                  string          `db:"logo_url"`
	DefaultCommissionPercent decimal.Decimal `db:"default_commission_percent"`
	AuditFields
}
