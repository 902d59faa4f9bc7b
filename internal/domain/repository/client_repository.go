package repository

import (
	"context"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// ClientRepository puerto de clientes CRM.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, firmID, id string) (*entity.Client, error)
	List(ctx context.Context, firmID string, limit, offset int) ([]*entity.Client, int, error)
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, firmID, id string) (bool, error)
}
