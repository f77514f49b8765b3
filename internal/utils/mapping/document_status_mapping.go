package mapping

import (
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/models"
)

// ToModelDocumentStatus converts a domain DocumentStatus to its model.
func ToModelDocumentStatus(s domain.DocumentStatus) models.DocumentStatus {
	return models.DocumentStatus{
		TenantID:      s.TenantID,
		ReferenceType: s.ReferenceType,
		ReferenceID:   s.ReferenceID,
		PaymentStatus: string(s.PaymentStatus),
		BalanceDue:    s.BalanceDue,
		UpdatedAt:     s.UpdatedAt,
		UpdatedBy:     s.UpdatedBy,
	}
}

// ToDomainDocumentStatus converts a model DocumentStatus to its domain form.
func ToDomainDocumentStatus(m models.DocumentStatus) domain.DocumentStatus {
	return domain.DocumentStatus{
		TenantID:      m.TenantID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		BalanceDue:    m.BalanceDue,
		UpdatedAt:     m.UpdatedAt,
		UpdatedBy:     m.UpdatedBy,
	}
}
