package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// CollaborationReaderSvc defines read operations for collaboration data
type CollaborationReaderSvc interface {
	// ListCollaborations retrieves all collaborations the user is part of,
	// enriched with the counterpart's name and email.
	ListCollaborations(ctx context.Context, requestingUserID string) ([]dto.CollaborationResponse, error)

	// AreCollaborators reports whether two users share an accepted collaboration.
	AreCollaborators(ctx context.Context, userID string, otherUserID string) (bool, error)
}

// CollaborationWriterSvc defines write operations for collaboration data
type CollaborationWriterSvc interface {
	// RequestCollaboration creates a pending collaboration towards the user
	// identified by email. Duplicate links in either direction are rejected.
	RequestCollaboration(ctx context.Context, req dto.RequestCollaborationRequest, requesterUserID string) (*domain.Collaboration, error)

	// RespondToCollaboration accepts or declines a pending request. Only the
	// invited side may respond.
	RespondToCollaboration(ctx context.Context, collaborationID string, accept bool, respondingUserID string) (*domain.Collaboration, error)

	// RevokeCollaboration ends an existing collaboration. Either side may revoke.
	RevokeCollaboration(ctx context.Context, collaborationID string, requestingUserID string) error
}

// CollaborationSvcFacade combines all collaboration-related service interfaces
type CollaborationSvcFacade interface {
	CollaborationReaderSvc
	CollaborationWriterSvc
}
