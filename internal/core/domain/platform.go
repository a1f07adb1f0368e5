package domain

import "github.com/shopspring/decimal"

// Platform is a third-party marketplace (e.g. an outsourcing site) that takes
// a commission off the top of a project budget.
type Platform struct {
	PlatformID               string          `json:"platformID"` // Primary Key (UUID)
	Name                     string          `json:"name"`
	LogoURL                  string          `json:"logoUrl"`
	DefaultCommissionPercent decimal.Decimal `json:"defaultCommissionPercent"` // 0-100
	AuditFields
}
