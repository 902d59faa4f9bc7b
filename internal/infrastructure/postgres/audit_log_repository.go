package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo registro de auditoría append-only.
type AuditLogRepo struct {
	db Querier
}

// NewAuditLogRepository construye el repositorio.
func NewAuditLogRepository(db Querier) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

// Create agrega una entrada.
func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, firm_id, actor_id, action, entity, entity_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, l.ID, l.FirmID, l.ActorID, l.Action, l.Entity, l.EntityID, jsonArg(l.Metadata), l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit_log: %w", err)
	}
	return nil
}

// ListByFirm entradas de la firma, más reciente primero, con el total.
func (r *AuditLogRepo) ListByFirm(ctx context.Context, firmID string, limit, offset int) ([]*entity.AuditLog, int, error) {
	if !validID(firmID) {
		return nil, 0, nil
	}
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs WHERE firm_id = $1`, firmID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit_logs: %w", err)
	}
	query := `
		SELECT id, firm_id, actor_id, action, entity, entity_id, metadata, created_at
		FROM audit_logs WHERE firm_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, firmID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit_logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var meta []byte
		if err := rows.Scan(&l.ID, &l.FirmID, &l.ActorID, &l.Action, &l.Entity, &l.EntityID, &meta, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit_log: %w", err)
		}
		l.Metadata = meta
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
