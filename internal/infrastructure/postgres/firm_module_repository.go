package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.FirmModuleRepository = (*FirmModuleRepo)(nil)

// Las lecturas devuelven primero las columnas del módulo y después las de la instalación.
const bindingSelect = `
	SELECT ` + moduleColumns + `,
		fm.id, fm.firm_id, fm.module_id, fm.is_enabled, fm.settings, fm.installed_by, fm.installed_at, fm.updated_at
	FROM firm_modules fm
	JOIN modules m ON m.id = fm.module_id`

// FirmModuleRepo instalaciones módulo-firma sobre PostgreSQL.
type FirmModuleRepo struct {
	db Querier
}

// NewFirmModuleRepository construye el repositorio de instalaciones.
func NewFirmModuleRepository(db Querier) *FirmModuleRepo {
	return &FirmModuleRepo{db: db}
}

func scanBinding(row rowScanner) (*entity.FirmModule, error) {
	var fm entity.FirmModule
	var settings []byte
	m, err := scanModule(row,
		&fm.ID, &fm.FirmID, &fm.ModuleID, &fm.IsEnabled, &settings, &fm.InstalledBy, &fm.InstalledAt, &fm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	fm.Settings = settings
	fm.Module = m
	return &fm, nil
}

// Create instala; la pareja (firm, module) repetida = domain.ErrConflict.
func (r *FirmModuleRepo) Create(ctx context.Context, fm *entity.FirmModule) error {
	query := `
		INSERT INTO firm_modules (id, firm_id, module_id, is_enabled, settings, installed_by, installed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	settings := fm.Settings
	if len(settings) == 0 {
		settings = []byte(`{}`)
	}
	_, err := r.db.Exec(ctx, query,
		fm.ID, fm.FirmID, fm.ModuleID, fm.IsEnabled, string(settings), fm.InstalledBy, fm.InstalledAt, fm.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "el módulo ya está instalado en la firma", "insert firm_module")
	}
	return nil
}

// Get instalación con su módulo; (nil, nil) si no está instalado.
func (r *FirmModuleRepo) Get(ctx context.Context, firmID, moduleID string) (*entity.FirmModule, error) {
	if !validID(firmID) || !validID(moduleID) {
		return nil, nil
	}
	fm, err := scanBinding(r.db.QueryRow(ctx, bindingSelect+` WHERE fm.firm_id = $1 AND fm.module_id = $2`, firmID, moduleID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get firm_module: %w", err)
	}
	return fm, nil
}

// Update persiste is_enabled y settings.
func (r *FirmModuleRepo) Update(ctx context.Context, fm *entity.FirmModule) error {
	query := `UPDATE firm_modules SET is_enabled = $3, settings = $4, updated_at = $5 WHERE firm_id = $1 AND module_id = $2`
	settings := fm.Settings
	if len(settings) == 0 {
		settings = []byte(`{}`)
	}
	if _, err := r.db.Exec(ctx, query, fm.FirmID, fm.ModuleID, fm.IsEnabled, string(settings), fm.UpdatedAt); err != nil {
		return fmt.Errorf("update firm_module: %w", err)
	}
	return nil
}

// Delete desinstala; false si no había instalación.
func (r *FirmModuleRepo) Delete(ctx context.Context, firmID, moduleID string) (bool, error) {
	if !validID(firmID) || !validID(moduleID) {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM firm_modules WHERE firm_id = $1 AND module_id = $2`, firmID, moduleID)
	if err != nil {
		return false, fmt.Errorf("delete firm_module: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByFirm instalaciones de la firma por nombre de módulo.
func (r *FirmModuleRepo) ListByFirm(ctx context.Context, firmID string) ([]*entity.FirmModule, error) {
	if !validID(firmID) {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, bindingSelect+` WHERE fm.firm_id = $1 ORDER BY m.name`, firmID)
	if err != nil {
		return nil, fmt.Errorf("list firm_modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.FirmModule
	for rows.Next() {
		fm, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan firm_module: %w", err)
		}
		list = append(list, fm)
	}
	return list, rows.Err()
}

// ListEnabledModules módulos instalados, habilitados y activos de la firma.
func (r *FirmModuleRepo) ListEnabledModules(ctx context.Context, firmID string) ([]*entity.Module, error) {
	if !validID(firmID) {
		return nil, nil
	}
	query := `
		SELECT ` + moduleColumns + `
		FROM firm_modules fm
		JOIN modules m ON m.id = fm.module_id
		WHERE fm.firm_id = $1 AND fm.is_enabled AND m.is_active
		ORDER BY m.name`
	rows, err := r.db.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("list enabled modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// HasActiveModule informa si la firma tiene el módulo instalado, habilitado y activo.
func (r *FirmModuleRepo) HasActiveModule(ctx context.Context, firmID, moduleSlug string) (bool, error) {
	if !validID(firmID) {
		return false, nil
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM firm_modules fm
			JOIN modules m ON m.id = fm.module_id
			WHERE fm.firm_id = $1 AND m.slug = $2 AND fm.is_enabled AND m.is_active
		)`
	var ok bool
	if err := r.db.QueryRow(ctx, query, firmID, moduleSlug).Scan(&ok); err != nil {
		return false, fmt.Errorf("has active module: %w", err)
	}
	return ok, nil
}
