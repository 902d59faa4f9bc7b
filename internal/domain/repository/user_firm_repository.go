package repository

import (
	"context"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// UserFirmRepository puerto de persistencia de membresías (user, firm, role).
type UserFirmRepository interface {
	// Create devuelve domain.ErrConflict si el usuario ya es miembro.
	Create(ctx context.Context, uf *entity.UserFirm) error
	Get(ctx context.Context, userID, firmID string) (*entity.UserFirm, error)
	UpdateRole(ctx context.Context, userID, firmID string, role entity.Role) error
	Delete(ctx context.Context, userID, firmID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Membership, error)
	ListMembers(ctx context.Context, firmID string) ([]entity.Member, error)
	CountByRole(ctx context.Context, firmID string, role entity.Role) (int, error)
	// HasAnyRole informa si el usuario tiene alguno de los roles en alguna firma.
	HasAnyRole(ctx context.Context, userID string, roles []entity.Role) (bool, error)
	// HasRoleInHolding igual que HasAnyRole pero limitado a firmas de un holding.
	HasRoleInHolding(ctx context.Context, userID, holdingID string, roles []entity.Role) (bool, error)
}
