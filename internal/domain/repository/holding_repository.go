package repository

import (
	"context"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// HoldingRepository puerto de persistencia para Holding.
type HoldingRepository interface {
	Create(ctx context.Context, h *entity.Holding) error
	GetByID(ctx context.Context, id string) (*entity.Holding, error)
	List(ctx context.Context) ([]*entity.Holding, error)
}
