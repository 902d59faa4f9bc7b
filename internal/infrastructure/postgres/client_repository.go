package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, firm_id, name, email, phone, company, notes, created_at, updated_at`

// ClientRepo clientes CRM sobre PostgreSQL.
type ClientRepo struct {
	db Querier
}

// NewClientRepository construye el repositorio.
func NewClientRepository(db Querier) *ClientRepo {
	return &ClientRepo{db: db}
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.FirmID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query, c.ID, c.FirmID, c.Name, c.Email, c.Phone, c.Company, c.Notes, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID cliente de la firma.
func (r *ClientRepo) GetByID(ctx context.Context, firmID, id string) (*entity.Client, error) {
	if !validID(firmID) || !validID(id) {
		return nil, nil
	}
	c, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE firm_id = $1 AND id = $2`, firmID, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List clientes por nombre con el total.
func (r *ClientRepo) List(ctx context.Context, firmID string, limit, offset int) ([]*entity.Client, int, error) {
	if !validID(firmID) {
		return nil, 0, nil
	}
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE firm_id = $1`, firmID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE firm_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`,
		firmID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update reescribe los datos del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $3, email = $4, phone = $5, company = $6, notes = $7, updated_at = $8
		WHERE firm_id = $1 AND id = $2`
	if _, err := r.db.Exec(ctx, query, c.FirmID, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Notes, c.UpdatedAt); err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete borra el cliente; false si no existía en la firma.
func (r *ClientRepo) Delete(ctx context.Context, firmID, id string) (bool, error) {
	if !validID(firmID) || !validID(id) {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE firm_id = $1 AND id = $2`, firmID, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
