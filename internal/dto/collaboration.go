package dto

import (
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// RequestCollaborationRequest defines the data for inviting a partner.
type RequestCollaborationRequest struct {
	PartnerEmail string `json:"partnerEmail" binding:"required,email"`
}

// RespondCollaborationRequest carries the answer to a pending invitation.
type RespondCollaborationRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// CollaborationResponse defines the data returned for a collaboration,
// described from the requesting user's side of the link.
type CollaborationResponse struct {
	CollaborationID string    `json:"collaborationID"`
	Status          string    `json:"status"`
	PartnerUserID   string    `json:"partnerUserID"`
	PartnerName     string    `json:"partnerName"`
	PartnerEmail    string    `json:"partnerEmail"`
	RequestedByMe   bool      `json:"requestedByMe"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListCollaborationsResponse wraps the list of collaborations.
type ListCollaborationsResponse struct {
	Collaborations []CollaborationResponse `json:"collaborations"`
}

// ToCollaborationResponse converts a domain.Collaboration to a DTO relative to
// the given viewer. The counterpart's name and email come from the partner user.
func ToCollaborationResponse(collab *domain.Collaboration, viewerID string, partner *domain.User) CollaborationResponse {
	return CollaborationResponse{
		CollaborationID: collab.CollaborationID,
		Status:          string(collab.Status),
		PartnerUserID:   partner.UserID,
		PartnerName:     partner.Name,
		PartnerEmail:    partner.Email,
		RequestedByMe:   collab.RequesterID == viewerID,
		CreatedAt:       collab.CreatedAt,
	}
}
