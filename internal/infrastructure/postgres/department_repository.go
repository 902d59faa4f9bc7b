package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo departamentos de RR.HH.
type DepartmentRepo struct {
	db Querier
}

// NewDepartmentRepository construye el repositorio.
func NewDepartmentRepository(db Querier) *DepartmentRepo {
	return &DepartmentRepo{db: db}
}

// Create persiste un departamento; nombre repetido en la firma = domain.ErrConflict.
func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	query := `
		INSERT INTO departments (id, firm_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query, d.ID, d.FirmID, d.Name, d.Description, d.CreatedAt, d.UpdatedAt); err != nil {
		return conflictOr(err, "ya existe el departamento "+d.Name, "insert department")
	}
	return nil
}

// GetByID departamento de la firma.
func (r *DepartmentRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Department, error) {
	if !validID(firmID) || !validID(id) {
		return nil, nil
	}
	query := `SELECT id, firm_id, name, description, created_at, updated_at FROM departments WHERE firm_id = $1 AND id = $2`
	var d entity.Department
	if err := r.db.QueryRow(ctx, query, firmID, id).Scan(&d.ID, &d.FirmID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// ListByFirm departamentos por nombre.
func (r *DepartmentRepo) ListByFirm(ctx context.Context, firmID string) ([]*entity.Department, error) {
	if !validID(firmID) {
		return nil, nil
	}
	query := `SELECT id, firm_id, name, description, created_at, updated_at FROM departments WHERE firm_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.FirmID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
