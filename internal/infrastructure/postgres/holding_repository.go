package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.HoldingRepository = (*HoldingRepo)(nil)

// HoldingRepo implementación de HoldingRepository sobre PostgreSQL.
type HoldingRepo struct {
	db Querier
}

// NewHoldingRepository construye el repositorio.
func NewHoldingRepository(db Querier) *HoldingRepo {
	return &HoldingRepo{db: db}
}

// Create persiste un holding.
func (r *HoldingRepo) Create(ctx context.Context, h *entity.Holding) error {
	query := `
		INSERT INTO holdings (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, query, h.ID, h.Name, h.Description, h.CreatedAt, h.UpdatedAt); err != nil {
		return conflictOr(err, "holding ya existe", "insert holding")
	}
	return nil
}

// GetByID obtiene un holding; (nil, nil) si no existe.
func (r *HoldingRepo) GetByID(ctx context.Context, id string) (*entity.Holding, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT id, name, description, created_at, updated_at FROM holdings WHERE id = $1`
	var h entity.Holding
	err := r.db.QueryRow(ctx, query, id).Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get holding: %w", err)
	}
	return &h, nil
}

// List devuelve todos los holdings por nombre.
func (r *HoldingRepo) List(ctx context.Context) ([]*entity.Holding, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM holdings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Holding
	for rows.Next() {
		var h entity.Holding
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
