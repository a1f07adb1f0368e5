package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a client, enforcing ownership.
	GetClientByID(ctx context.Context, clientID string, requestingUserID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of the user's clients.
	ListClients(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient persists a new client for the user.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)

	// UpdateClient updates a client's details, enforcing ownership.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error)

	// DeleteClient removes a client, enforcing ownership.
	DeleteClient(ctx context.Context, clientID string, requestingUserID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
