package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
	"github.com/gestorlab/freela_backend/internal/middleware"
)

var (
	ErrSelfCollaboration     = errors.New("cannot collaborate with yourself")
	ErrCollaborationNotOpen  = errors.New("collaboration is not pending")
	ErrCollaborationResponse = errors.New("only the invited user may respond")
)

// collaborationService manages the partnership links between users.
type collaborationService struct {
	collaborationRepo portsrepo.CollaborationRepositoryFacade
	userRepo          portsrepo.UserRepositoryFacade
}

// NewCollaborationService creates a new collaboration service.
func NewCollaborationService(collaborationRepo portsrepo.CollaborationRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CollaborationSvcFacade {
	return &collaborationService{
		collaborationRepo: collaborationRepo,
		userRepo:          userRepo,
	}
}

// Ensure collaborationService implements the portssvc.CollaborationSvcFacade interface
var _ portssvc.CollaborationSvcFacade = (*collaborationService)(nil)

func (s *collaborationService) RequestCollaboration(ctx context.Context, req dto.RequestCollaborationRequest, requesterUserID string) (*domain.Collaboration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	partner, err := s.userRepo.FindUserByEmail(ctx, req.PartnerEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no user with that email: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if partner.UserID == requesterUserID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSelfCollaboration)
	}

	// One link per pair, whichever side asked first.
	existing, err := s.collaborationRepo.FindCollaborationBetween(ctx, requesterUserID, partner.UserID)
	if err == nil {
		if existing.Status == domain.CollaborationDeclined || existing.Status == domain.CollaborationRevoked {
			// A dead link can be re-opened by replacing it.
			if err := s.collaborationRepo.DeleteCollaboration(ctx, existing.CollaborationID); err != nil {
				return nil, err
			}
		} else {
			return nil, fmt.Errorf("collaboration already exists: %w", apperrors.ErrDuplicate)
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	collaboration := domain.Collaboration{
		CollaborationID: uuid.NewString(),
		RequesterID:     requesterUserID,
		AddresseeID:     partner.UserID,
		Status:          domain.CollaborationPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}

	if err := s.collaborationRepo.SaveCollaboration(ctx, collaboration); err != nil {
		return nil, err
	}

	logger.Info("Collaboration requested",
		slog.String("collaboration_id", collaboration.CollaborationID),
		slog.String("addressee_id", partner.UserID),
	)
	return &collaboration, nil
}

func (s *collaborationService) RespondToCollaboration(ctx context.Context, collaborationID string, accept bool, respondingUserID string) (*domain.Collaboration, error) {
	collaboration, err := s.collaborationRepo.FindCollaborationByID(ctx, collaborationID)
	if err != nil {
		return nil, err
	}
	if !collaboration.Involves(respondingUserID) {
		return nil, apperrors.ErrNotFound
	}
	if collaboration.AddresseeID != respondingUserID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrCollaborationResponse)
	}
	if collaboration.Status != domain.CollaborationPending {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrCollaborationNotOpen)
	}

	status := domain.CollaborationDeclined
	if accept {
		status = domain.CollaborationAccepted
	}

	now := time.Now()
	if err := s.collaborationRepo.UpdateCollaborationStatus(ctx, collaborationID, status, respondingUserID, now); err != nil {
		return nil, err
	}

	collaboration.Status = status
	collaboration.LastUpdatedAt = now
	collaboration.LastUpdatedBy = respondingUserID
	return collaboration, nil
}

func (s *collaborationService) RevokeCollaboration(ctx context.Context, collaborationID string, requestingUserID string) error {
	collaboration, err := s.collaborationRepo.FindCollaborationByID(ctx, collaborationID)
	if err != nil {
		return err
	}
	if !collaboration.Involves(requestingUserID) {
		return apperrors.ErrNotFound
	}

	return s.collaborationRepo.UpdateCollaborationStatus(ctx, collaborationID, domain.CollaborationRevoked, requestingUserID, time.Now())
}

func (s *collaborationService) ListCollaborations(ctx context.Context, requestingUserID string) ([]dto.CollaborationResponse, error) {
	collaborations, err := s.collaborationRepo.ListCollaborationsByUser(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CollaborationResponse, 0, len(collaborations))
	for i := range collaborations {
		collaboration := collaborations[i]
		partnerID := collaboration.RequesterID
		if partnerID == requestingUserID {
			partnerID = collaboration.AddresseeID
		}

		partner, err := s.userRepo.FindUserByID(ctx, partnerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		responses = append(responses, dto.ToCollaborationResponse(&collaboration, requestingUserID, partner))
	}
	return responses, nil
}

// AreCollaborators reports whether the two users share an accepted link, in
// either direction. This is the gate every partner attachment goes through.
func (s *collaborationService) AreCollaborators(ctx context.Context, userID string, otherUserID string) (bool, error) {
	collaboration, err := s.collaborationRepo.FindCollaborationBetween(ctx, userID, otherUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return collaboration.Status == domain.CollaborationAccepted, nil
}
