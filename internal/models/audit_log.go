package models

import "time"

// AuditLog is one recorded change to a resource.
type AuditLog struct {
	AuditLogID   string    `json:"auditLogID" db:"audit_log_id"`
	ActorUserID  string    `json:"actorUserID" db:"actor_user_id"`
	Action       string    `json:"action" db:"action"`
	ResourceType string    `json:"resourceType" db:"resource_type"`
	ResourceID   string    `json:"resourceID" db:"resource_id"`
	Changes      string    `json:"changes,omitempty" db:"changes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
