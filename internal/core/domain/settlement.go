package domain

import "github.com/shopspring/decimal"

// PartnerCommission is one line of the owner-facing commission breakdown.
type PartnerCommission struct {
	PartnerID      string          `json:"partnerID"`
	PartnerName    string          `json:"partnerName"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	Share          ProjectShare    `json:"shareDetails"`
}

// Settlement is the computed, per-viewer breakdown of expected vs. received
// amounts for a project. It is a pure derivation over the project, its shares
// and its payment ledger; nothing in it is persisted.
type Settlement struct {
	YourTotalToReceive     decimal.Decimal `json:"yourTotalToReceive"`
	YourAmountReceived     decimal.Decimal `json:"yourAmountReceived"`
	YourRemainingToReceive decimal.Decimal `json:"yourRemainingToReceive"` // Negative when over-paid; never clamped
	PlatformFee            decimal.Decimal `json:"platformFee"`
	NetAmountAfterPlatform decimal.Decimal `json:"netAmountAfterPlatform"`
	OwnerExpectedProfit    decimal.Decimal `json:"ownerExpectedProfit"`
	PartnersCommissions    []PartnerCommission `json:"partnersCommissionsList"`
}
