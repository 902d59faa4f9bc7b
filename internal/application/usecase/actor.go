package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// Actor identidad ya autorizada por el gate sobre una firma. Los casos de uso vuelven a
// consultar la tabla de capacidades para no depender de que el llamador lo haya hecho.
type Actor struct {
	UserID string
	FirmID string
	Role   entity.Role
}

func (a Actor) require(op access.Operation) error {
	if a.UserID == "" {
		return domain.Deny(domain.ReasonUnauthenticated, "sesión requerida")
	}
	if !access.Allowed(op, a.Role) {
		return domain.Deny(domain.ReasonForbidden, "rol "+string(a.Role)+" no permitido para "+string(op))
	}
	return nil
}

// SystemActorID autor de las acciones de tareas programadas.
const SystemActorID = "system"

type auditEntry struct {
	firmID   *string
	actorID  string
	action   string
	entity   string
	entityID string
	meta     map[string]any
}

func writeAudit(ctx context.Context, repo repository.AuditLogRepository, e auditEntry) error {
	var meta json.RawMessage
	if len(e.meta) > 0 {
		b, err := json.Marshal(e.meta)
		if err != nil {
			return fmt.Errorf("audit metadata: %w", err)
		}
		meta = b
	}
	log := &entity.AuditLog{
		ID:        uuid.New().String(),
		FirmID:    e.firmID,
		ActorID:   e.actorID,
		Action:    e.action,
		Entity:    e.entity,
		EntityID:  e.entityID,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, log); err != nil {
		return fmt.Errorf("audit %s: %w", e.action, err)
	}
	return nil
}

func firmAudit(a Actor, action, ent, entityID string, meta map[string]any) auditEntry {
	firmID := a.FirmID
	return auditEntry{firmID: &firmID, actorID: a.UserID, action: action, entity: ent, entityID: entityID, meta: meta}
}

const dateLayout = "2006-01-02"

func parseDate(v *domain.ValidationError, field, s string, required bool) time.Time {
	if s == "" {
		if required {
			v.Add(field, "requerido")
		}
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		v.Add(field, "fecha inválida, formato YYYY-MM-DD")
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// resolveModule acepta el ID o el slug del módulo.
func resolveModule(ctx context.Context, repo repository.ModuleRepository, ref string) (*entity.Module, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return repo.GetByID(ctx, ref)
	}
	return repo.GetBySlug(ctx, ref)
}
