package mapping

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToModelCollaboration converts a domain Collaboration to a model Collaboration
func ToModelCollaboration(d domain.Collaboration) models.Collaboration {
	return models.Collaboration{
		CollaborationID: d.CollaborationID,
		RequesterID:     d.RequesterID,
		AddresseeID:     d.AddresseeID,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCollaboration converts a model Collaboration to a domain Collaboration
func ToDomainCollaboration(m models.Collaboration) domain.Collaboration {
	return domain.Collaboration{
		CollaborationID: m.CollaborationID,
		RequesterID:     m.RequesterID,
		AddresseeID:     m.AddresseeID,
		Status:          domain.CollaborationStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCollaborationSlice converts model Collaborations to domain Collaborations
func ToDomainCollaborationSlice(ms []models.Collaboration) []domain.Collaboration {
	ds := make([]domain.Collaboration, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCollaboration(m)
	}
	return ds
}
