package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.UserFirmRepository = (*UserFirmRepo)(nil)

// UserFirmRepo membresías sobre PostgreSQL.
type UserFirmRepo struct {
	db Querier
}

// NewUserFirmRepository construye el repositorio de membresías.
func NewUserFirmRepository(db Querier) *UserFirmRepo {
	return &UserFirmRepo{db: db}
}

func roleStrings(roles []entity.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// Create vincula usuario y firma.
func (r *UserFirmRepo) Create(ctx context.Context, uf *entity.UserFirm) error {
	query := `
		INSERT INTO user_firms (id, user_id, firm_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, uf.ID, uf.UserID, uf.FirmID, string(uf.Role), uf.CreatedAt, uf.UpdatedAt)
	if err != nil {
		return conflictOr(err, "el usuario ya es miembro de la firma", "insert user_firm")
	}
	return nil
}

// Get membresía del usuario en la firma; (nil, nil) si no es miembro.
func (r *UserFirmRepo) Get(ctx context.Context, userID, firmID string) (*entity.UserFirm, error) {
	if !validID(userID) || !validID(firmID) {
		return nil, nil
	}
	query := `
		SELECT id, user_id, firm_id, role, created_at, updated_at
		FROM user_firms WHERE user_id = $1 AND firm_id = $2`
	var uf entity.UserFirm
	var role string
	err := r.db.QueryRow(ctx, query, userID, firmID).Scan(&uf.ID, &uf.UserID, &uf.FirmID, &role, &uf.CreatedAt, &uf.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_firm: %w", err)
	}
	uf.Role = entity.Role(role)
	return &uf, nil
}

// UpdateRole cambia el rol del miembro.
func (r *UserFirmRepo) UpdateRole(ctx context.Context, userID, firmID string, role entity.Role) error {
	query := `UPDATE user_firms SET role = $3, updated_at = now() WHERE user_id = $1 AND firm_id = $2`
	if _, err := r.db.Exec(ctx, query, userID, firmID, string(role)); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete quita la membresía; false si no existía.
func (r *UserFirmRepo) Delete(ctx context.Context, userID, firmID string) (bool, error) {
	if !validID(userID) || !validID(firmID) {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM user_firms WHERE user_id = $1 AND firm_id = $2`, userID, firmID)
	if err != nil {
		return false, fmt.Errorf("delete user_firm: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser firmas del usuario con su rol, por nombre de firma.
func (r *UserFirmRepo) ListByUser(ctx context.Context, userID string) ([]entity.Membership, error) {
	if !validID(userID) {
		return nil, nil
	}
	query := `
		SELECT f.id, f.slug, f.name, f.logo, f.theme_color, f.holding_id, f.created_at, f.updated_at, uf.role
		FROM user_firms uf
		JOIN firms f ON f.id = uf.firm_id
		WHERE uf.user_id = $1
		ORDER BY f.name`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []entity.Membership
	for rows.Next() {
		var m entity.Membership
		var role string
		f := &m.Firm
		if err := rows.Scan(&f.ID, &f.Slug, &f.Name, &f.Logo, &f.ThemeColor, &f.HoldingID, &f.CreatedAt, &f.UpdatedAt, &role); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.Role = entity.Role(role)
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListMembers miembros de la firma con email y nombre, por email.
func (r *UserFirmRepo) ListMembers(ctx context.Context, firmID string) ([]entity.Member, error) {
	if !validID(firmID) {
		return nil, nil
	}
	query := `
		SELECT uf.id, uf.user_id, uf.firm_id, uf.role, uf.created_at, uf.updated_at, u.email, u.name
		FROM user_firms uf
		JOIN users u ON u.id = uf.user_id
		WHERE uf.firm_id = $1
		ORDER BY lower(u.email)`
	rows, err := r.db.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var list []entity.Member
	for rows.Next() {
		var m entity.Member
		var role string
		if err := rows.Scan(&m.ID, &m.UserID, &m.FirmID, &role, &m.CreatedAt, &m.UpdatedAt, &m.Email, &m.Name); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.Role = entity.Role(role)
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByRole cuántos miembros de la firma tienen el rol.
func (r *UserFirmRepo) CountByRole(ctx context.Context, firmID string, role entity.Role) (int, error) {
	if !validID(firmID) {
		return 0, nil
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_firms WHERE firm_id = $1 AND role = $2`, firmID, string(role)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by role: %w", err)
	}
	return n, nil
}

// HasAnyRole informa si el usuario tiene alguno de los roles en alguna firma.
func (r *UserFirmRepo) HasAnyRole(ctx context.Context, userID string, roles []entity.Role) (bool, error) {
	if !validID(userID) {
		return false, nil
	}
	var ok bool
	query := `SELECT EXISTS (SELECT 1 FROM user_firms WHERE user_id = $1 AND role = ANY($2))`
	if err := r.db.QueryRow(ctx, query, userID, roleStrings(roles)).Scan(&ok); err != nil {
		return false, fmt.Errorf("has any role: %w", err)
	}
	return ok, nil
}

// HasRoleInHolding igual que HasAnyRole limitado a las firmas del holding.
func (r *UserFirmRepo) HasRoleInHolding(ctx context.Context, userID, holdingID string, roles []entity.Role) (bool, error) {
	if !validID(userID) || !validID(holdingID) {
		return false, nil
	}
	var ok bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_firms uf
			JOIN firms f ON f.id = uf.firm_id
			WHERE uf.user_id = $1 AND f.holding_id = $2 AND uf.role = ANY($3)
		)`
	if err := r.db.QueryRow(ctx, query, userID, holdingID, roleStrings(roles)).Scan(&ok); err != nil {
		return false, fmt.Errorf("has role in holding: %w", err)
	}
	return ok, nil
}
