package services

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

// AuditSvcFacade records and lists the audit trail.
type AuditSvcFacade interface {
	// RecordAction writes an audit record asynchronously. It never blocks the
	// caller and a failed write only logs a warning.
	RecordAction(ctx context.Context, actorUserID string, action domain.AuditAction, resourceType, resourceID string, changes any)

	// ListAuditLogs returns a filtered, paginated view of the audit trail.
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)
}
