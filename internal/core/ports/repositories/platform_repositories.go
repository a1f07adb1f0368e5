package repositories

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// PlatformReader defines read operations for platform data
type PlatformReader interface {
	// FindPlatformByID retrieves a specific platform by its ID.
	FindPlatformByID(ctx context.Context, platformID string) (*domain.Platform, error)

	// ListPlatformsByOwner retrieves all platforms registered by a user.
	ListPlatformsByOwner(ctx context.Context, ownerID string) ([]domain.Platform, error)
}

// PlatformWriter defines write operations for platform data
type PlatformWriter interface {
	// SavePlatform persists a new platform.
	SavePlatform(ctx context.Context, platform domain.Platform) error

	// UpdatePlatform updates an existing platform's details.
	UpdatePlatform(ctx context.Context, platform domain.Platform) error

	// DeletePlatform removes a platform. Projects referencing it keep their
	// snapshotted commission percent.
	DeletePlatform(ctx context.Context, platformID string) error
}

// PlatformRepositoryFacade combines all platform-related repository interfaces
type PlatformRepositoryFacade interface {
	PlatformReader
	PlatformWriter
}
