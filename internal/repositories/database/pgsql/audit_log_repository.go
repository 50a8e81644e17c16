package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	"github.com/vyapaarhq/ledger_backend/internal/models"
	"github.com/vyapaarhq/ledger_backend/internal/utils/mapping"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit log data.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// SaveAuditLog inserts one audit record.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	m := mapping.ToModelAuditLog(log)

	query := `
		INSERT INTO audit_logs (audit_log_id, actor_user_id, action, resource_type, resource_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AuditLogID,
		m.ActorUserID,
		m.Action,
		m.ResourceType,
		m.ResourceID,
		m.Changes,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+m.AuditLogID, err)
	}
	return nil
}

// ListAuditLogs returns the matching records newest first plus the total
// match count.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter) ([]domain.AuditLog, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	whereClause := ` WHERE 1=1`
	args := []interface{}{}
	if filter.ActorUserID != "" {
		args = append(args, filter.ActorUserID)
		whereClause += ` AND actor_user_id = $` + strconv.Itoa(len(args))
	}
	if filter.Action != "" {
		args = append(args, string(filter.Action))
		whereClause += ` AND action = $` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		whereClause += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		whereClause += ` AND created_at <= $` + strconv.Itoa(len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count audit logs", err)
	}

	args = append(args, limit)
	limitPlaceholder := strconv.Itoa(len(args))
	args = append(args, offset)
	offsetPlaceholder := strconv.Itoa(len(args))

	query := `
		SELECT audit_log_id, actor_user_id, action, resource_type, resource_id, changes, created_at
		FROM audit_logs` + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + limitPlaceholder + ` OFFSET $` + offsetPlaceholder + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	defer rows.Close()

	logs := []models.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		if scanErr := rows.Scan(
			&m.AuditLogID,
			&m.ActorUserID,
			&m.Action,
			&m.ResourceType,
			&m.ResourceID,
			&m.Changes,
			&m.CreatedAt,
		); scanErr != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan audit log row", scanErr)
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}

	return mapping.ToDomainAuditLogs(logs), total, nil
}
