package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

const contractColumns = `id, firm_id, employee_id, type, start_date, end_date, salary, status, terminated_at, termination_reason, created_at, updated_at`

// ContractRepo contratos sobre PostgreSQL.
type ContractRepo struct {
	db Querier
}

// NewContractRepository construye el repositorio.
func NewContractRepository(db Querier) *ContractRepo {
	return &ContractRepo{db: db}
}

func scanContract(row rowScanner) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(&c.ID, &c.FirmID, &c.EmployeeID, &c.Type, &c.StartDate, &c.EndDate, &c.Salary, &c.Status,
		&c.TerminatedAt, &c.TerminationReason, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Contract, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Create persiste un contrato.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query, c.ID, c.FirmID, c.EmployeeID, c.Type, c.StartDate, c.EndDate, c.Salary, c.Status,
		c.TerminatedAt, c.TerminationReason, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID contrato de la firma.
func (r *ContractRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Contract, error) {
	if !validID(firmID) || !validID(id) {
		return nil, nil
	}
	c, err := scanContract(r.db.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE firm_id = $1 AND id = $2`, firmID, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// ListByFirm contratos de la firma, opcionalmente de un empleado.
func (r *ContractRepo) ListByFirm(ctx context.Context, firmID, employeeID string) ([]*entity.Contract, error) {
	if !validID(firmID) {
		return nil, nil
	}
	if employeeID == "" {
		return r.list(ctx, `SELECT `+contractColumns+` FROM contracts WHERE firm_id = $1 ORDER BY start_date DESC, id`, firmID)
	}
	if !validID(employeeID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts WHERE firm_id = $1 AND employee_id = $2
		ORDER BY start_date DESC, id`, firmID, employeeID)
}

// Update persiste estado y terminación.
func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts SET end_date = $2, salary = $3, status = $4, terminated_at = $5, termination_reason = $6, updated_at = $7
		WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, c.ID, c.EndDate, c.Salary, c.Status, c.TerminatedAt, c.TerminationReason, c.UpdatedAt); err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return nil
}

// ListExpired contratos activos de cualquier firma vencidos antes de before.
func (r *ContractRepo) ListExpired(ctx context.Context, before time.Time) ([]*entity.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts
		WHERE status = 'active' AND end_date IS NOT NULL AND end_date < $1
		ORDER BY end_date, id`, before)
}
