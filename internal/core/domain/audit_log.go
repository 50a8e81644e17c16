package domain

import "time"

// AuditAction classifies what happened to a resource.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLog is one recorded change. Writes are fire-and-forget: the log is
// not part of the ledger's atomic unit and a failed write never fails the
// business operation.
type AuditLog struct {
	AuditLogID   string      `json:"auditLogID"`
	ActorUserID  string      `json:"actorUserID"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   string      `json:"resourceID"`
	Changes      string      `json:"changes,omitempty"` // JSON blob of changed fields
	CreatedAt    time.Time   `json:"createdAt"`
}
