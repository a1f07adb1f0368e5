package dto

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlatformRequest defines the data required to register a platform.
type CreatePlatformRequest struct {
	Name                     string          `json:"name" binding:"required,min=1,max=100"`
	LogoURL                  string          `json:"logoUrl" binding:"omitempty,url"`
	DefaultCommissionPercent decimal.Decimal `json:"defaultCommissionPercent"`
}

// UpdatePlatformRequest defines the data allowed for updating a platform.
type UpdatePlatformRequest struct {
	Name                     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	LogoURL                  *string          `json:"logoUrl" binding:"omitempty,url"`
	DefaultCommissionPercent *decimal.Decimal `json:"defaultCommissionPercent"`
}

// PlatformResponse defines the data returned for a platform.
type PlatformResponse struct {
	PlatformID               string          `json:"platformID"`
	Name                     string          `json:"name"`
	LogoURL                  string          `json:"logoUrl,omitempty"`
	DefaultCommissionPercent decimal.Decimal `json:"defaultCommissionPercent"`
}

// ListPlatformsResponse wraps the list of platforms.
type ListPlatformsResponse struct {
	Platforms []PlatformResponse `json:"platforms"`
}

// ToPlatformResponse converts a domain.Platform to PlatformResponse DTO.
func ToPlatformResponse(platform *domain.Platform) PlatformResponse {
	return PlatformResponse{
		PlatformID:               platform.PlatformID,
		Name:                     platform.Name,
		LogoURL:                  platform.LogoURL,
		DefaultCommissionPercent: platform.DefaultCommissionPercent.Round(2),
	}
}

// ToListPlatformsResponse converts a slice of domain.Platform to ListPlatformsResponse DTO.
func ToListPlatformsResponse(platforms []domain.Platform) ListPlatformsResponse {
	responses := make([]PlatformResponse, len(platforms))
	for i, platform := range platforms {
		responses[i] = ToPlatformResponse(&platform)
	}
	return ListPlatformsResponse{Platforms: responses}
}
