package mapping

import (
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/models"
)

// ToModelAuditFields copies the audit columns, storing timestamps in UTC.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt.UTC(),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt.UTC(),
		LastUpdatedBy: d.LastUpdatedBy,
		Version:       d.Version,
	}
}

// ToDomainAuditFields is the inverse of ToModelAuditFields. Drivers may hand back
// local-zone times, so they are normalized again.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt.UTC(),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
		LastUpdatedBy: m.LastUpdatedBy,
		Version:       m.Version,
	}
}
