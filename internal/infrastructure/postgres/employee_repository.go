package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, firm_id, department_id, matricule, first_name, last_name, email, phone, position, salary, hire_date, status, created_at, updated_at`

const insertEmployee = `INSERT INTO employees (` + employeeColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// EmployeeRepo empleados sobre PostgreSQL.
type EmployeeRepo struct {
	db Querier
}

// NewEmployeeRepository construye el repositorio.
func NewEmployeeRepository(db Querier) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func employeeArgs(e *entity.Employee) []any {
	return []any{
		e.ID, e.FirmID, e.DepartmentID, e.Matricule, e.FirstName, e.LastName, e.Email, e.Phone,
		e.Position, e.Salary, e.HireDate, e.Status, e.CreatedAt, e.UpdatedAt,
	}
}

func scanEmployee(row rowScanner) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.FirmID, &e.DepartmentID, &e.Matricule, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.Position, &e.Salary, &e.HireDate, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	if _, err := r.db.Exec(ctx, insertEmployee, employeeArgs(e)...); err != nil {
		return conflictOr(err, "matrícula "+e.Matricule+" ya existe en la firma", "insert employee")
	}
	return nil
}

// CreateBatch inserta todos en un solo viaje. Debe ejecutarse dentro de una transacción:
// el primer error aborta la tx y el llamador hace Rollback.
func (r *EmployeeRepo) CreateBatch(ctx context.Context, list []*entity.Employee) error {
	if len(list) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range list {
		batch.Queue(insertEmployee, employeeArgs(e)...)
	}
	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for _, e := range list {
		if _, err := br.Exec(); err != nil {
			return conflictOr(err, "matrícula "+e.Matricule+" ya existe en la firma", "insert employee batch")
		}
	}
	return nil
}

// GetByID empleado de la firma.
func (r *EmployeeRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Employee, error) {
	if !validID(firmID) || !validID(id) {
		return nil, nil
	}
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE firm_id = $1 AND id = $2`, firmID, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// List empleados por apellido con el total.
func (r *EmployeeRepo) List(ctx context.Context, firmID string, limit, offset int) ([]*entity.Employee, int, error) {
	if !validID(firmID) {
		return nil, 0, nil
	}
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE firm_id = $1`, firmID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE firm_id = $1
		ORDER BY last_name, first_name, matricule LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, firmID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// ExistingMatricules matrículas de la lista ya usadas en la firma.
func (r *EmployeeRepo) ExistingMatricules(ctx context.Context, firmID string, matricules []string) ([]string, error) {
	if !validID(firmID) || len(matricules) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT matricule FROM employees WHERE firm_id = $1 AND matricule = ANY($2) ORDER BY matricule`,
		firmID, matricules)
	if err != nil {
		return nil, fmt.Errorf("existing matricules: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan matricule: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update reescribe el empleado (incluida la firma, usado por los traslados).
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees SET firm_id = $2, department_id = $3, matricule = $4, first_name = $5, last_name = $6,
			email = $7, phone = $8, position = $9, salary = $10, hire_date = $11, status = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, e.ID, e.FirmID, e.DepartmentID, e.Matricule, e.FirstName, e.LastName,
		e.Email, e.Phone, e.Position, e.Salary, e.HireDate, e.Status, e.UpdatedAt)
	if err != nil {
		return conflictOr(err, "matrícula "+e.Matricule+" ya existe en la firma", "update employee")
	}
	return nil
}
