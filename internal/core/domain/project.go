package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusInProgress ProjectStatus = "in_progress"
	StatusPaused     ProjectStatus = "paused"
	StatusCompleted  ProjectStatus = "completed"
	StatusArchived   ProjectStatus = "archived"
)

// PaymentStatus is the three-tier paid state of any stakeholder ledger.
type PaymentStatus string

const (
	Unpaid      PaymentStatus = "unpaid"
	PartialPaid PaymentStatus = "partial"
	Paid        PaymentStatus = "paid"
)

// StatusForAmount applies the shared thresholding rule: received <= 0 is
// unpaid, anything below expected is partial, expected or above is paid.
// Over-payment is representable; it flips the status to paid, nothing more.
func StatusForAmount(received, expected decimal.Decimal) PaymentStatus {
	switch {
	case received.LessThanOrEqual(decimal.Zero):
		return Unpaid
	case received.GreaterThanOrEqual(expected):
		return Paid
	default:
		return PartialPaid
	}
}

// ClientLedger tracks money actually received from the client.
type ClientLedger struct {
	Status     PaymentStatus   `json:"status"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// OwnerLedger tracks money the owner has taken out of the project.
type OwnerLedger struct {
	Status         PaymentStatus   `json:"status"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
}

// PartnerLedger mirrors a partner's share ledger for fast read access.
// The ProjectShare row remains the authoritative record; both are written
// in the same storage transaction.
type PartnerLedger struct {
	Status         PaymentStatus   `json:"status"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
}

// PaymentDetails is the embedded ledger document on a project. Updates go
// through the With* methods below, which always return a fresh value with a
// copied partner map, so no caller can alias the stored document and mutate
// it in place.
type PaymentDetails struct {
	Client   ClientLedger             `json:"client"`
	Owner    OwnerLedger              `json:"owner"`
	Partners map[string]PartnerLedger `json:"partners"`
}

// NewPaymentDetails returns the ledger for a project with no money movement.
func NewPaymentDetails() PaymentDetails {
	return PaymentDetails{
		Client:   ClientLedger{Status: Unpaid, AmountPaid: decimal.Zero},
		Owner:    OwnerLedger{Status: Unpaid, AmountReceived: decimal.Zero},
		Partners: map[string]PartnerLedger{},
	}
}

func (pd PaymentDetails) copyPartners() map[string]PartnerLedger {
	partners := make(map[string]PartnerLedger, len(pd.Partners))
	for id, ledger := range pd.Partners {
		partners[id] = ledger
	}
	return partners
}

// WithClientPayment returns a new ledger with the client side replaced.
// The status is derived from the project budget with the shared threshold rule.
func (pd PaymentDetails) WithClientPayment(amountPaid, budget decimal.Decimal) PaymentDetails {
	pd.Partners = pd.copyPartners()
	pd.Client = ClientLedger{
		Status:     StatusForAmount(amountPaid, budget),
		AmountPaid: amountPaid,
	}
	return pd
}

// WithOwnerReceipt returns a new ledger with the owner side replaced.
func (pd PaymentDetails) WithOwnerReceipt(amountReceived, expected decimal.Decimal) PaymentDetails {
	pd.Partners = pd.copyPartners()
	pd.Owner = OwnerLedger{
		Status:         StatusForAmount(amountReceived, expected),
		AmountReceived: amountReceived,
	}
	return pd
}

// WithPartnerReceipt returns a new ledger with one partner's mirror replaced.
func (pd PaymentDetails) WithPartnerReceipt(partnerID string, amountReceived, expected decimal.Decimal) PaymentDetails {
	pd.Partners = pd.copyPartners()
	pd.Partners[partnerID] = PartnerLedger{
		Status:         StatusForAmount(amountReceived, expected),
		AmountReceived: amountReceived,
	}
	return pd
}

// WithoutPartner returns a new ledger with one partner's mirror removed.
func (pd PaymentDetails) WithoutPartner(partnerID string) PaymentDetails {
	pd.Partners = pd.copyPartners()
	delete(pd.Partners, partnerID)
	return pd
}

// Project is the unit of work being billed: it belongs to one owner and one
// client, optionally goes through a platform that takes a commission, and can
// be revenue-shared with partners via ProjectShare rows.
type Project struct {
	ProjectID                 string          `json:"projectID"` // Primary Key (UUID)
	OwnerID                   string          `json:"ownerID"`   // FK -> users
	ClientID                  string          `json:"clientID"`  // FK -> clients
	Name                      string          `json:"name"`
	Description               string          `json:"description"`
	Budget                    decimal.Decimal `json:"budget"`               // >= 0
	PlatformID                *string         `json:"platformID"`           // Nullable FK -> platforms
	PlatformCommissionPercent decimal.Decimal `json:"platformCommissionPercent"` // 0-100
	// Owner commission override. Stored for forward compatibility but not
	// applied: the owner's entitlement is always the residual after the
	// platform and every partner are paid out.
	OwnerCommissionType  *CommissionType `json:"ownerCommissionType"`
	OwnerCommissionValue decimal.Decimal `json:"ownerCommissionValue"`
	Deadline             *time.Time      `json:"deadline"`
	Status               ProjectStatus   `json:"status"`
	PaymentDetails       PaymentDetails  `json:"paymentDetails"`
	// Version guards the ledger against concurrent read-modify-write; every
	// paymentDetails write checks and bumps it.
	Version int64 `json:"version"`
	AuditFields
}
