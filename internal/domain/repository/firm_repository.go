package repository

import (
	"context"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// FirmRepository puerto de persistencia para Firm.
// Create devuelve domain.ErrConflict si el slug ya existe. Los Get devuelven (nil, nil) si no existe.
type FirmRepository interface {
	Create(ctx context.Context, firm *entity.Firm) error
	GetByID(ctx context.Context, id string) (*entity.Firm, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Firm, error)
	// Update no modifica el slug.
	Update(ctx context.Context, firm *entity.Firm) error
	ListByHolding(ctx context.Context, holdingID string) ([]*entity.Firm, error)
	CountByHolding(ctx context.Context, holdingID string) (int, error)
}
