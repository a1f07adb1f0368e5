package mapping

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToDomainPlatform converts a model Platform to a domain Platform
func ToDomainPlatform(m models.Platform) domain.Platform {
	return domain.Platform{
		PlatformID:               m.PlatformID,
		Name:                     m.Name,
		LogoURL:                  m.LogoURL,
		DefaultCommissionPercent: m.DefaultCommissionPercent,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPlatform converts a domain Platform to a model Platform
func ToModelPlatform(d domain.Platform) models.Platform {
	return models.Platform{
		PlatformID:               d.PlatformID,
		Name:                     d.Name,
		LogoURL:                  d.LogoURL,
		DefaultCommissionPercent: d.DefaultCommissionPercent,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlatformSlice converts a slice of model Platforms to domain Platforms
func ToDomainPlatformSlice(ms []models.Platform) []domain.Platform {
	ds := make([]domain.Platform, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlatform(m)
	}
	return ds
}
