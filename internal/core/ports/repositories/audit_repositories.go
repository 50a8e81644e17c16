package repositories

import (
	"context"
	"time"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// AuditLogFilter narrows the audit trail listing.
type AuditLogFilter struct {
	ActorUserID string
	Action      domain.AuditAction
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
	Offset      int
}

// AuditLogRepositoryFacade persists and lists audit records.
type AuditLogRepositoryFacade interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error

	// ListAuditLogs returns the matching records newest first plus the total
	// match count for pagination.
	ListAuditLogs(ctx context.Context, filter AuditLogFilter) ([]domain.AuditLog, int64, error)
}
