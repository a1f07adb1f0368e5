package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	portsrepo "github.com/gestorlab/freela_backend/internal/core/ports/repositories"
	portssvc "github.com/gestorlab/freela_backend/internal/core/ports/services"
	"github.com/gestorlab/freela_backend/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

// platformService provides platform management operations.
type platformService struct {
	platformRepo portsrepo.PlatformRepositoryFacade
}

// NewPlatformService creates a new platform service.
func NewPlatformService(platformRepo portsrepo.PlatformRepositoryFacade) portssvc.PlatformSvcFacade {
	return &platformService{platformRepo: platformRepo}
}

// Ensure platformService implements the portssvc.PlatformSvcFacade interface
var _ portssvc.PlatformSvcFacade = (*platformService)(nil)

func validateCommissionPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return fmt.Errorf("commission percent must be between 0 and 100: %w", apperrors.ErrValidation)
	}
	return nil
}

// ownedPlatform loads a platform and enforces that the requester created it.
func (s *platformService) ownedPlatform(ctx context.Context, platformID string, requestingUserID string) (*domain.Platform, error) {
	platform, err := s.platformRepo.FindPlatformByID(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if platform.CreatedBy != requestingUserID {
		return nil, apperrors.ErrNotFound
	}
	return platform, nil
}

func (s *platformService) CreatePlatform(ctx context.Context, req dto.CreatePlatformRequest, creatorUserID string) (*domain.Platform, error) {
	if err := validateCommissionPercent(req.DefaultCommissionPercent); err != nil {
		return nil, err
	}

	now := time.Now()
	platform := domain.Platform{
		PlatformID:               uuid.NewString(),
		Name:                     req.Name,
		LogoURL:                  req.LogoURL,
		DefaultCommissionPercent: req.DefaultCommissionPercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.platformRepo.SavePlatform(ctx, platform); err != nil {
		return nil, err
	}
	return &platform, nil
}

func (s *platformService) GetPlatformByID(ctx context.Context, platformID string, requestingUserID string) (*domain.Platform, error) {
	return s.ownedPlatform(ctx, platformID, requestingUserID)
}

func (s *platformService) ListPlatforms(ctx context.Context, requestingUserID string) ([]domain.Platform, error) {
	return s.platformRepo.ListPlatformsByOwner(ctx, requestingUserID)
}

func (s *platformService) UpdatePlatform(ctx context.Context, platformID string, req dto.UpdatePlatformRequest, requestingUserID string) (*domain.Platform, error) {
	platform, err := s.ownedPlatform(ctx, platformID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		platform.Name = *req.Name
	}
	if req.LogoURL != nil {
		platform.LogoURL = *req.LogoURL
	}
	if req.DefaultCommissionPercent != nil {
		if err := validateCommissionPercent(*req.DefaultCommissionPercent); err != nil {
			return nil, err
		}
		platform.DefaultCommissionPercent = *req.DefaultCommissionPercent
	}
	platform.LastUpdatedAt = time.Now()
	platform.LastUpdatedBy = requestingUserID

	if err := s.platformRepo.UpdatePlatform(ctx, *platform); err != nil {
		return nil, err
	}
	return platform, nil
}

func (s *platformService) DeletePlatform(ctx context.Context, platformID string, requestingUserID string) error {
	if _, err := s.ownedPlatform(ctx, platformID, requestingUserID); err != nil {
		return err
	}
	return s.platformRepo.DeletePlatform(ctx, platformID)
}
