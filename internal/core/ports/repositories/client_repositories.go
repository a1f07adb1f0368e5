package repositories

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClientsByOwner retrieves a paginated list of clients belonging to a user.
	ListClientsByOwner(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client. Fails with ErrConflict if projects still reference it.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
