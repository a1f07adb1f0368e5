package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// clientService provides client management operations.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

// Ensure clientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// ownedClient loads a client and enforces that the requester owns it.
// A foreign client is reported as not found rather than forbidden, so the
// existence of other users' clients never leaks.
func (s *clientService) ownedClient(ctx context.Context, clientID string, requestingUserID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.OwnerID != requestingUserID {
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	if req.LegalName == "" {
		return nil, fmt.Errorf("client legal name is required: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:  uuid.NewString(),
		OwnerID:   creatorUserID,
		LegalName: req.LegalName,
		TradeName: req.TradeName,
		Email:     req.Email,
		Phone:     req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string, requestingUserID string) (*domain.Client, error) {
	return s.ownedClient(ctx, clientID, requestingUserID)
}

func (s *clientService) ListClients(ctx context.Context, requestingUserID string, limit int, offset int) ([]domain.Client, error) {
	return s.clientRepo.ListClientsByOwner(ctx, requestingUserID, limit, offset)
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error) {
	client, err := s.ownedClient(ctx, clientID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.LegalName != nil {
		client.LegalName = *req.LegalName
	}
	if req.TradeName != nil {
		client.TradeName = *req.TradeName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = requestingUserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string, requestingUserID string) error {
	if _, err := s.ownedClient(ctx, clientID, requestingUserID); err != nil {
		return err
	}
	return s.clientRepo.DeleteClient(ctx, clientID)
}
