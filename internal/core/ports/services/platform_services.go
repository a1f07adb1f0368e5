package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// PlatformReaderSvc defines read operations for platform data
type PlatformReaderSvc interface {
	// GetPlatformByID retrieves a platform, enforcing ownership.
	GetPlatformByID(ctx context.Context, platformID string, requestingUserID string) (*domain.Platform, error)

	// ListPlatforms retrieves all platforms registered by the user.
	ListPlatforms(ctx context.Context, requestingUserID string) ([]domain.Platform, error)
}

// PlatformWriterSvc defines write operations for platform data
type PlatformWriterSvc interface {
	// CreatePlatform persists a new platform for the user.
	CreatePlatform(ctx context.Context, req dto.CreatePlatformRequest, creatorUserID string) (*domain.Platform, error)

	// UpdatePlatform updates a platform's details, enforcing ownership.
	UpdatePlatform(ctx context.Context, platformID string, req dto.UpdatePlatformRequest, requestingUserID string) (*domain.Platform, error)

	// DeletePlatform removes a platform, enforcing ownership.
	DeletePlatform(ctx context.Context, platformID string, requestingUserID string) error
}

// PlatformSvcFacade combines all platform-related service interfaces
type PlatformSvcFacade interface {
	PlatformReaderSvc
	PlatformWriterSvc
}
