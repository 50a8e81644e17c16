package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

const auditWriteTimeout = 5 * time.Second

// auditService writes the audit trail. Writes are fire-and-forget so a slow
// or failing audit store never fails the business operation it describes.
type auditService struct {
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// RecordAction persists one audit record on a background goroutine. The
// caller's context is only used for its logger; the write itself runs on a
// fresh context so request cancellation cannot drop the record.
func (s *auditService) RecordAction(ctx context.Context, actorUserID string, action domain.AuditAction, resourceType, resourceID string, changes any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var changesJSON string
	if changes != nil {
		raw, err := json.Marshal(changes)
		if err != nil {
			logger.Warn("Failed to marshal audit changes",
				slog.String("resource_type", resourceType),
				slog.String("resource_id", resourceID),
				slog.String("error", err.Error()))
		} else {
			changesJSON = string(raw)
		}
	}

	record := domain.AuditLog{
		AuditLogID:   uuid.NewString(),
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changesJSON,
		CreatedAt:    time.Now().UTC(),
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if err := s.auditRepo.SaveAuditLog(writeCtx, record); err != nil {
			logger.Warn("Failed to write audit record",
				slog.String("resource_type", resourceType),
				slog.String("resource_id", resourceID),
				slog.String("error", err.Error()))
		}
	}()
}

// ListAuditLogs returns a filtered, paginated view of the audit trail.
func (s *auditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	filter := portsrepo.AuditLogFilter{
		ActorUserID: params.ActorUserID,
		Action:      domain.AuditAction(params.Action),
		DateFrom:    params.DateFrom,
		DateTo:      params.DateTo,
		Limit:       params.Limit,
		Offset:      params.Offset,
	}
	if params.DateTo != nil {
		// The date-only form means "through this day", so push the bound to
		// the end of the day.
		end := params.DateTo.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	logs, total, err := s.auditRepo.ListAuditLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	res := dto.ToListAuditLogsResponse(logs, total, params.Limit, params.Offset)
	return &res, nil
}
