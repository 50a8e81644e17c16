package dto

import (
	"time"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for the audit trail listing.
type ListAuditLogsParams struct {
	ActorUserID string     `form:"actorUserID"`
	Action      string     `form:"action" binding:"omitempty,oneof=CREATE UPDATE DELETE"`
	DateFrom    *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo      *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit       int        `form:"limit,default=50"`
	Offset      int        `form:"offset,default=0"`
}

// AuditLogResponse defines the data returned for one audit record.
type AuditLogResponse struct {
	AuditLogID   string    `json:"auditLogID"`
	ActorUserID  string    `json:"actorUserID"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceID"`
	Changes      string    `json:"changes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListAuditLogsResponse wraps a page of audit records with the total match count.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"auditLogs"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ToAuditLogResponse converts a domain.AuditLog to AuditLogResponse DTO.
func ToAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID:   l.AuditLogID,
		ActorUserID:  l.ActorUserID,
		Action:       string(l.Action),
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Changes:      l.Changes,
		CreatedAt:    l.CreatedAt,
	}
}

// ToListAuditLogsResponse converts a page of domain.AuditLog to the wrapper DTO.
func ToListAuditLogsResponse(logs []domain.AuditLog, total int64, limit, offset int) ListAuditLogsResponse {
	res := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		res[i] = ToAuditLogResponse(&l)
	}
	return ListAuditLogsResponse{AuditLogs: res, Total: total, Limit: limit, Offset: offset}
}
