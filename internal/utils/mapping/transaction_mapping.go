package mapping

import (
	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		ProjectID:     d.ProjectID,
		Amount:        d.Amount,
		PaymentDate:   d.PaymentDate,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ProjectID:     m.ProjectID,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
