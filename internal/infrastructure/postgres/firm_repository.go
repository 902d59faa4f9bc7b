package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.FirmRepository = (*FirmRepo)(nil)

const firmColumns = `id, slug, name, logo, theme_color, holding_id, created_at, updated_at`

// FirmRepo implementación de FirmRepository sobre PostgreSQL.
type FirmRepo struct {
	db Querier
}

// NewFirmRepository construye el repositorio de firmas.
func NewFirmRepository(db Querier) *FirmRepo {
	return &FirmRepo{db: db}
}

func scanFirm(row rowScanner) (*entity.Firm, error) {
	var f entity.Firm
	if err := row.Scan(&f.ID, &f.Slug, &f.Name, &f.Logo, &f.ThemeColor, &f.HoldingID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create persiste una firma; slug repetido = domain.ErrConflict.
func (r *FirmRepo) Create(ctx context.Context, f *entity.Firm) error {
	query := `INSERT INTO firms (` + firmColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, f.ID, f.Slug, f.Name, f.Logo, f.ThemeColor, f.HoldingID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return conflictOr(err, "ya existe una firma con slug "+f.Slug, "insert firm")
	}
	return nil
}

// GetByID obtiene una firma por ID.
func (r *FirmRepo) GetByID(ctx context.Context, id string) (*entity.Firm, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+firmColumns+` FROM firms WHERE id = $1`, id)
}

// GetBySlug obtiene una firma por slug.
func (r *FirmRepo) GetBySlug(ctx context.Context, slug string) (*entity.Firm, error) {
	return r.getOne(ctx, `SELECT `+firmColumns+` FROM firms WHERE slug = $1`, slug)
}

func (r *FirmRepo) getOne(ctx context.Context, query string, arg string) (*entity.Firm, error) {
	f, err := scanFirm(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get firm: %w", err)
	}
	return f, nil
}

// Update modifica nombre, logo y color. El slug no se toca.
func (r *FirmRepo) Update(ctx context.Context, f *entity.Firm) error {
	query := `UPDATE firms SET name = $2, logo = $3, theme_color = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, f.ID, f.Name, f.Logo, f.ThemeColor, f.UpdatedAt); err != nil {
		return fmt.Errorf("update firm: %w", err)
	}
	return nil
}

// ListByHolding firmas del holding por nombre.
func (r *FirmRepo) ListByHolding(ctx context.Context, holdingID string) ([]*entity.Firm, error) {
	if !validID(holdingID) {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+firmColumns+` FROM firms WHERE holding_id = $1 ORDER BY name`, holdingID)
	if err != nil {
		return nil, fmt.Errorf("list firms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Firm
	for rows.Next() {
		f, err := scanFirm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan firm: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// CountByHolding número de firmas del holding.
func (r *FirmRepo) CountByHolding(ctx context.Context, holdingID string) (int, error) {
	if !validID(holdingID) {
		return 0, nil
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM firms WHERE holding_id = $1`, holdingID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count firms: %w", err)
	}
	return n, nil
}
