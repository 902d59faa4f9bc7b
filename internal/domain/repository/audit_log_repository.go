package repository

import (
	"context"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// AuditLogRepository sólo agrega y lee; nunca modifica ni borra.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// ListByFirm más reciente primero; devuelve también el total.
	ListByFirm(ctx context.Context, firmID string, limit, offset int) ([]*entity.AuditLog, int, error)
}
