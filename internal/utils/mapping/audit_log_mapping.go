package mapping

import (
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditLogID:   d.AuditLogID,
		ActorUserID:  d.ActorUserID,
		Action:       string(d.Action),
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		Changes:      d.Changes,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditLogID:   m.AuditLogID,
		ActorUserID:  m.ActorUserID,
		Action:       domain.AuditAction(m.Action),
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Changes:      m.Changes,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainAuditLogs converts a slice of model AuditLogs to domain AuditLogs
func ToDomainAuditLogs(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}
