package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/gestorlab/freela_backend/internal/apperrors"
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToModelProject converts a domain Project to a model Project, serializing the
// payment ledger into its JSONB representation.
func ToModelProject(d domain.Project) (models.Project, error) {
	paymentDetails, err := json.Marshal(d.PaymentDetails)
	if err != nil {
		return models.Project{}, fmt.Errorf("marshalling payment details for project %s: %w", d.ProjectID, err)
	}

	m := models.Project{
		ProjectID:                 d.ProjectID,
		OwnerID:                   d.OwnerID,
		ClientID:                  d.ClientID,
		Name:                      d.Name,
		Description:               d.Description,
		Budget:                    d.Budget,
		PlatformID:                d.PlatformID,
		PlatformCommissionPercent: d.PlatformCommissionPercent,
		OwnerCommissionValue:      d.OwnerCommissionValue,
		Deadline:                  d.Deadline,
		Status:                    string(d.Status),
		PaymentDetails:            paymentDetails,
		Version:                   d.Version,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
	if d.OwnerCommissionType != nil {
		s := string(*d.OwnerCommissionType)
		m.OwnerCommissionType = &s
	}
	return m, nil
}

// ToDomainProject converts a model Project to a domain Project, decoding the
// JSONB payment ledger. A document that fails to decode is a data-integrity
// fault, surfaced as an internal error rather than masked.
func ToDomainProject(m models.Project) (domain.Project, error) {
	paymentDetails := domain.NewPaymentDetails()
	if len(m.PaymentDetails) > 0 {
		if err := json.Unmarshal(m.PaymentDetails, &paymentDetails); err != nil {
			return domain.Project{}, fmt.Errorf("%w: malformed payment details for project %s: %v", apperrors.ErrInternal, m.ProjectID, err)
		}
		if paymentDetails.Partners == nil {
			paymentDetails.Partners = map[string]domain.PartnerLedger{}
		}
	}

	d := domain.Project{
		ProjectID:                 m.ProjectID,
		OwnerID:                   m.OwnerID,
		ClientID:                  m.ClientID,
		Name:                      m.Name,
		Description:               m.Description,
		Budget:                    m.Budget,
		PlatformID:                m.PlatformID,
		PlatformCommissionPercent: m.PlatformCommissionPercent,
		OwnerCommissionValue:      m.OwnerCommissionValue,
		Deadline:                  m.Deadline,
		Status:                    domain.ProjectStatus(m.Status),
		PaymentDetails:            paymentDetails,
		Version:                   m.Version,
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
	if m.OwnerCommissionType != nil {
		t := domain.CommissionType(*m.OwnerCommissionType)
		d.OwnerCommissionType = &t
	}
	return d, nil
}

// ToDomainProjectSlice converts model Projects to domain Projects
func ToDomainProjectSlice(ms []models.Project) ([]domain.Project, error) {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		d, err := ToDomainProject(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
