package dto

import (
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// CreateClientRequest defines the data required to create a client.
type CreateClientRequest struct {
	LegalName string `json:"legalName" binding:"required,min=1,max=150"`
	TradeName string `json:"tradeName" binding:"omitempty,max=150"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateClientRequest struct {
	LegalName *string `json:"legalName" binding:"omitempty,min=1,max=150"`
	TradeName *string `json:"tradeName" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID    string    `json:"clientID"`
	LegalName   string    `json:"legalName"`
	TradeName   string    `json:"tradeName,omitempty"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO.
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:    client.ClientID,
		LegalName:   client.LegalName,
		TradeName:   client.TradeName,
		DisplayName: client.DisplayName(),
		Email:       client.Email,
		Phone:       client.Phone,
		CreatedAt:   client.CreatedAt,
	}
}

// ToListClientsResponse converts a slice of domain.Client to ListClientsResponse DTO.
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	responses := make([]ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = ToClientResponse(&client)
	}
	return ListClientsResponse{Clients: responses}
}
