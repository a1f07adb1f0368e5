package domain

import "github.com/shopspring/decimal"

// CommissionType selects how a commission value is interpreted.
type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

// SharePermission is the access level a partner holds on a shared project.
type SharePermission string

const (
	PermissionRead SharePermission = "read"
	PermissionEdit SharePermission = "edit"
)

// ProjectShare links one partner to one project, carrying their commission
// terms and their receipt ledger. Unique per (project, partner).
type ProjectShare struct {
	ShareID         string          `json:"shareID"`   // Primary Key (UUID)
	ProjectID       string          `json:"projectID"` // FK -> projects
	PartnerID       string          `json:"partnerID"` // FK -> users
	CommissionType  CommissionType  `json:"commissionType"`
	CommissionValue decimal.Decimal `json:"commissionValue"`
	Permissions     SharePermission `json:"permissions"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	AmountPaid      decimal.Decimal `json:"amountPaid"` // Money this partner already took out
	AuditFields
}
