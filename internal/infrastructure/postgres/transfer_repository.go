package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, employee_id, from_firm_id, to_firm_id, status, reason, requested_by, decided_by, decided_at, created_at, updated_at`

// TransferRepo traslados entre firmas.
type TransferRepo struct {
	db Querier
}

// NewTransferRepository construye el repositorio.
func NewTransferRepository(db Querier) *TransferRepo {
	return &TransferRepo{db: db}
}

func scanTransfer(row rowScanner) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(&t.ID, &t.EmployeeID, &t.FromFirmID, &t.ToFirmID, &t.Status, &t.Reason, &t.RequestedBy,
		&t.DecidedBy, &t.DecidedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste la solicitud; el índice parcial impide dos pendientes del mismo empleado.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query, t.ID, t.EmployeeID, t.FromFirmID, t.ToFirmID, t.Status, t.Reason, t.RequestedBy,
		t.DecidedBy, t.DecidedAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return conflictOr(err, "el empleado ya tiene un traslado pendiente", "insert transfer")
	}
	return nil
}

// GetByID traslado por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTransfer(r.db.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// ListByFirm traslados donde la firma es origen o destino.
func (r *TransferRepo) ListByFirm(ctx context.Context, firmID string) ([]*entity.Transfer, error) {
	if !validID(firmID) {
		return nil, nil
	}
	query := `SELECT ` + transferColumns + ` FROM transfers
		WHERE from_firm_id = $1 OR to_firm_id = $1
		ORDER BY created_at DESC, id`
	rows, err := r.db.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update persiste la decisión.
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer) error {
	query := `UPDATE transfers SET status = $2, decided_by = $3, decided_at = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, t.ID, t.Status, t.DecidedBy, t.DecidedAt, t.UpdatedAt); err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// HasPending informa si el empleado tiene un traslado pendiente.
func (r *TransferRepo) HasPending(ctx context.Context, employeeID string) (bool, error) {
	if !validID(employeeID) {
		return false, nil
	}
	var ok bool
	query := `SELECT EXISTS (SELECT 1 FROM transfers WHERE employee_id = $1 AND status = 'PENDING')`
	if err := r.db.QueryRow(ctx, query, employeeID).Scan(&ok); err != nil {
		return false, fmt.Errorf("has pending transfer: %w", err)
	}
	return ok, nil
}
