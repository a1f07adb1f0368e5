package mapping

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToModelProjectShare converts a domain ProjectShare to a model ProjectShare
func ToModelProjectShare(d domain.ProjectShare) models.ProjectShare {
	return models.ProjectShare{
		ShareID:         d.ShareID,
		ProjectID:       d.ProjectID,
		PartnerID:       d.PartnerID,
		CommissionType:  string(d.CommissionType),
		CommissionValue: d.CommissionValue,
		Permissions:     string(d.Permissions),
		PaymentStatus:   string(d.PaymentStatus),
		AmountPaid:      d.AmountPaid,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProjectShare converts a model ProjectShare to a domain ProjectShare
func ToDomainProjectShare(m models.ProjectShare) domain.ProjectShare {
	return domain.ProjectShare{
		ShareID:         m.ShareID,
		ProjectID:       m.ProjectID,
		PartnerID:       m.PartnerID,
		CommissionType:  domain.CommissionType(m.CommissionType),
		CommissionValue: m.CommissionValue,
		Permissions:     domain.SharePermission(m.Permissions),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		AmountPaid:      m.AmountPaid,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectShareSlice converts model ProjectShares to domain ProjectShares
func ToDomainProjectShareSlice(ms []models.ProjectShare) []domain.ProjectShare {
	ds := make([]domain.ProjectShare, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProjectShare(m)
	}
	return ds
}
