package dto

import (
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AttachPartnerRequest defines the data for attaching a revenue-share partner.
type AttachPartnerRequest struct {
	PartnerID       string          `json:"partnerID" binding:"required"`
	CommissionType  string          `json:"commissionType" binding:"required,oneof=percentage fixed"`
	CommissionValue decimal.Decimal `json:"commissionValue" binding:"required"`
	Permissions     string          `json:"permissions" binding:"omitempty,oneof=read edit"`
}

// UpdateShareRequest defines the data allowed for updating a partner share.
type UpdateShareRequest struct {
	CommissionType  *string          `json:"commissionType" binding:"omitempty,oneof=percentage fixed"`
	CommissionValue *decimal.Decimal `json:"commissionValue"`
	Permissions     *string          `json:"permissions" binding:"omitempty,oneof=read edit"`
}

// CreateProjectRequest defines the data required to create a project.
// Exactly one of ClientID and NewClient must be provided.
type CreateProjectRequest struct {
	Name                      string                `json:"name" binding:"required,min=1,max=200"`
	Description               string                `json:"description" binding:"omitempty,max=5000"`
	Budget                    decimal.Decimal       `json:"budget" binding:"required"`
	ClientID                  *string               `json:"clientID"`
	NewClient                 *CreateClientRequest  `json:"newClient"`
	PlatformID                *string               `json:"platformID"`
	PlatformCommissionPercent *decimal.Decimal      `json:"platformCommissionPercent"`
	OwnerCommissionType       *string               `json:"ownerCommissionType" binding:"omitempty,oneof=percentage fixed"`
	OwnerCommissionValue      *decimal.Decimal      `json:"ownerCommissionValue"`
	Deadline                  *time.Time            `json:"deadline"`
	Status                    *string               `json:"status" binding:"omitempty,oneof=draft in_progress paused completed archived"`
	Partner                   *AttachPartnerRequest `json:"partner"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// Using pointers to differentiate between omitted fields and zero-value fields.
// A request without a Partner block removes every existing share.
type UpdateProjectRequest struct {
	Name                      *string               `json:"name" binding:"omitempty,min=1,max=200"`
	Description               *string               `json:"description" binding:"omitempty,max=5000"`
	Budget                    *decimal.Decimal      `json:"budget"`
	ClientID                  *string               `json:"clientID"`
	PlatformID                *string               `json:"platformID"`
	PlatformCommissionPercent *decimal.Decimal      `json:"platformCommissionPercent"`
	OwnerCommissionType       *string               `json:"ownerCommissionType" binding:"omitempty,oneof=percentage fixed"`
	OwnerCommissionValue      *decimal.Decimal      `json:"ownerCommissionValue"`
	Deadline                  *time.Time            `json:"deadline"`
	Status                    *string               `json:"status" binding:"omitempty,oneof=draft in_progress paused completed archived"`
	Partner                   *AttachPartnerRequest `json:"partner"`
}

// RegisterReceiptRequest records a stakeholder withdrawal. Amount is ignored
// when IsFullPayment is set.
type RegisterReceiptRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	IsFullPayment bool             `json:"isFullPayment"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Status     *string `form:"status" binding:"omitempty,oneof=draft in_progress paused completed archived"`
	ClientID   *string `form:"clientID"`
	PlatformID *string `form:"platformID"`
	Search     string  `form:"search"`
	SortBy     string  `form:"sortBy,default=createdAt" binding:"omitempty,oneof=createdAt deadline budget name"`
	SortOrder  string  `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
	Page       int     `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ClientLedgerResponse is the client side of the payment ledger.
type ClientLedgerResponse struct {
	Status     string          `json:"status"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

// StakeholderLedgerResponse is the owner or partner side of the payment ledger.
type StakeholderLedgerResponse struct {
	Status         string          `json:"status"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
}

// PaymentDetailsResponse is the full ledger document returned with a project.
type PaymentDetailsResponse struct {
	Client   ClientLedgerResponse                 `json:"client"`
	Owner    StakeholderLedgerResponse            `json:"owner"`
	Partners map[string]StakeholderLedgerResponse `json:"partners"`
}

// ShareResponse defines the data returned for a partner share.
type ShareResponse struct {
	ShareID         string          `json:"shareID"`
	ProjectID       string          `json:"projectID"`
	PartnerID       string          `json:"partnerID"`
	CommissionType  string          `json:"commissionType"`
	CommissionValue decimal.Decimal `json:"commissionValue"`
	Permissions     string          `json:"permissions"`
	PaymentStatus   string          `json:"paymentStatus"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
}

// PartnerCommissionResponse is one line of the commission breakdown.
type PartnerCommissionResponse struct {
	PartnerID      string          `json:"partnerID"`
	PartnerName    string          `json:"partnerName"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	Share          ShareResponse   `json:"shareDetails"`
}

// SettlementResponse is the viewer-relative financial breakdown of a project.
type SettlementResponse struct {
	YourTotalToReceive     decimal.Decimal             `json:"yourTotalToReceive"`
	YourAmountReceived     decimal.Decimal             `json:"yourAmountReceived"`
	YourRemainingToReceive decimal.Decimal             `json:"yourRemainingToReceive"`
	PlatformFee            decimal.Decimal             `json:"platformFee"`
	NetAmountAfterPlatform decimal.Decimal             `json:"netAmountAfterPlatform"`
	OwnerExpectedProfit    decimal.Decimal             `json:"ownerExpectedProfit"`
	PartnersCommissions    []PartnerCommissionResponse `json:"partnersCommissionsList"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID                 string                 `json:"projectID"`
	OwnerID                   string                 `json:"ownerID"`
	ClientID                  string                 `json:"clientID"`
	Name                      string                 `json:"name"`
	Description               string                 `json:"description,omitempty"`
	Budget                    decimal.Decimal        `json:"budget"`
	PlatformID                *string                `json:"platformID,omitempty"`
	PlatformCommissionPercent decimal.Decimal        `json:"platformCommissionPercent"`
	Deadline                  *time.Time             `json:"deadline,omitempty"`
	Status                    string                 `json:"status"`
	PaymentDetails            PaymentDetailsResponse `json:"paymentDetails"`
	CreatedAt                 time.Time              `json:"createdAt"`
	LastUpdatedAt             time.Time              `json:"lastUpdatedAt"`
}

// ProjectSummaryResponse combines a project with its shares and the
// viewer-relative settlement.
type ProjectSummaryResponse struct {
	Project    ProjectResponse    `json:"project"`
	Shares     []ShareResponse    `json:"shares"`
	Settlement SettlementResponse `json:"financialSummary"`
}

// ListProjectsResponse wraps a page of project summaries.
type ListProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	Limit    int                      `json:"limit"`
}

// ToPaymentDetailsResponse converts a domain.PaymentDetails to its DTO.
func ToPaymentDetailsResponse(pd domain.PaymentDetails) PaymentDetailsResponse {
	partners := make(map[string]StakeholderLedgerResponse, len(pd.Partners))
	for partnerID, ledger := range pd.Partners {
		partners[partnerID] = StakeholderLedgerResponse{
			Status:         string(ledger.Status),
			AmountReceived: ledger.AmountReceived.Round(2),
		}
	}
	return PaymentDetailsResponse{
		Client: ClientLedgerResponse{
			Status:     string(pd.Client.Status),
			AmountPaid: pd.Client.AmountPaid.Round(2),
		},
		Owner: StakeholderLedgerResponse{
			Status:         string(pd.Owner.Status),
			AmountReceived: pd.Owner.AmountReceived.Round(2),
		},
		Partners: partners,
	}
}

// ToShareResponse converts a domain.ProjectShare to ShareResponse DTO.
func ToShareResponse(share *domain.ProjectShare) ShareResponse {
	return ShareResponse{
		ShareID:         share.ShareID,
		ProjectID:       share.ProjectID,
		PartnerID:       share.PartnerID,
		CommissionType:  string(share.CommissionType),
		CommissionValue: share.CommissionValue,
		Permissions:     string(share.Permissions),
		PaymentStatus:   string(share.PaymentStatus),
		AmountPaid:      share.AmountPaid.Round(2),
	}
}

// ToShareResponses converts a slice of domain.ProjectShare to []ShareResponse.
func ToShareResponses(shares []domain.ProjectShare) []ShareResponse {
	responses := make([]ShareResponse, len(shares))
	for i, share := range shares {
		responses[i] = ToShareResponse(&share)
	}
	return responses
}

// ToSettlementResponse converts a domain.Settlement to SettlementResponse DTO.
// Amounts are rounded to cents at this boundary only; internal math keeps full
// precision.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	commissions := make([]PartnerCommissionResponse, len(s.PartnersCommissions))
	for i, pc := range s.PartnersCommissions {
		commissions[i] = PartnerCommissionResponse{
			PartnerID:      pc.PartnerID,
			PartnerName:    pc.PartnerName,
			ExpectedAmount: pc.ExpectedAmount.Round(2),
			Share:          ToShareResponse(&pc.Share),
		}
	}
	return SettlementResponse{
		YourTotalToReceive:     s.YourTotalToReceive.Round(2),
		YourAmountReceived:     s.YourAmountReceived.Round(2),
		YourRemainingToReceive: s.YourRemainingToReceive.Round(2),
		PlatformFee:            s.PlatformFee.Round(2),
		NetAmountAfterPlatform: s.NetAmountAfterPlatform.Round(2),
		OwnerExpectedProfit:    s.OwnerExpectedProfit.Round(2),
		PartnersCommissions:    commissions,
	}
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:                 p.ProjectID,
		OwnerID:                   p.OwnerID,
		ClientID:                  p.ClientID,
		Name:                      p.Name,
		Description:               p.Description,
		Budget:                    p.Budget.Round(2),
		PlatformID:                p.PlatformID,
		PlatformCommissionPercent: p.PlatformCommissionPercent.Round(2),
		Deadline:                  p.Deadline,
		Status:                    string(p.Status),
		PaymentDetails:            ToPaymentDetailsResponse(p.PaymentDetails),
		CreatedAt:                 p.CreatedAt,
		LastUpdatedAt:             p.LastUpdatedAt,
	}
}
