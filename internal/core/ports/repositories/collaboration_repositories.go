package repositories

import (
	"context"
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// CollaborationReader defines read operations for collaboration data
type CollaborationReader interface {
	// FindCollaborationByID retrieves a specific collaboration by its ID.
	FindCollaborationByID(ctx context.Context, collaborationID string) (*domain.Collaboration, error)

	// FindCollaborationBetween retrieves the collaboration linking two users,
	// regardless of which side initiated it. Returns ErrNotFound when none exists.
	FindCollaborationBetween(ctx context.Context, userID string, otherUserID string) (*domain.Collaboration, error)

	// ListCollaborationsByUser retrieves all collaborations a user is part of,
	// on either side of the link.
	ListCollaborationsByUser(ctx context.Context, userID string) ([]domain.Collaboration, error)
}

// CollaborationWriter defines write operations for collaboration data
type CollaborationWriter interface {
	// SaveCollaboration persists a new collaboration request.
	SaveCollaboration(ctx context.Context, collaboration domain.Collaboration) error

	// UpdateCollaborationStatus transitions a collaboration to a new status.
	UpdateCollaborationStatus(ctx context.Context, collaborationID string, status domain.CollaborationStatus, updatedByUserID string, updatedAt time.Time) error

	// DeleteCollaboration removes a collaboration record.
	DeleteCollaboration(ctx context.Context, collaborationID string) error
}

// CollaborationRepositoryFacade combines all collaboration-related repository interfaces
type CollaborationRepositoryFacade interface {
	CollaborationReader
	CollaborationWriter
}
