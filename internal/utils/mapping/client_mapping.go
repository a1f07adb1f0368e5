package mapping

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		OwnerID:     d.OwnerID,
		LegalName:   d.LegalName,
		TradeName:   d.TradeName,
		Email:       d.Email,
		Phone:       d.Phone,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		OwnerID:     m.OwnerID,
		LegalName:   m.LegalName,
		TradeName:   m.TradeName,
		Email:       m.Email,
		Phone:       m.Phone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
