package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

const moduleColumns = `m.id, m.slug, m.name, m.description, m.version, m.base_path, m.icon, m.is_system, m.is_active, m.metadata, m.created_at, m.updated_at`

// ModuleRepo catálogo de módulos sobre PostgreSQL. Roles y rutas viven en metadata (JSONB).
type ModuleRepo struct {
	db Querier
}

// NewModuleRepository construye el repositorio del catálogo.
func NewModuleRepository(db Querier) *ModuleRepo {
	return &ModuleRepo{db: db}
}

// scanModule lee moduleColumns más los destinos extra (conteos).
func scanModule(row rowScanner, extra ...any) (*entity.Module, error) {
	var m entity.Module
	var meta []byte
	dest := []any{
		&m.ID, &m.Slug, &m.Name, &m.Description, &m.Version, &m.BasePath, &m.Icon,
		&m.IsSystem, &m.IsActive, &meta, &m.CreatedAt, &m.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		var md entity.ModuleMetadata
		if err := json.Unmarshal(meta, &md); err != nil {
			return nil, fmt.Errorf("metadata de %s: %w", m.Slug, err)
		}
		m.PermittedRoles = md.PermittedRoles
		m.Routes = md.Routes
	}
	return &m, nil
}

// Create registra un módulo; slug repetido = domain.ErrConflict.
func (r *ModuleRepo) Create(ctx context.Context, m *entity.Module) error {
	meta, err := json.Marshal(m.Metadata())
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	query := `
		INSERT INTO modules (id, slug, name, description, version, base_path, icon, is_system, is_active, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		m.ID, m.Slug, m.Name, m.Description, m.Version, m.BasePath, m.Icon,
		m.IsSystem, m.IsActive, string(meta), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "ya existe un módulo con slug "+m.Slug, "insert module")
	}
	return nil
}

// GetByID obtiene un módulo por ID.
func (r *ModuleRepo) GetByID(ctx context.Context, id string) (*entity.Module, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+moduleColumns+` FROM modules m WHERE m.id = $1`, id)
}

// GetBySlug obtiene un módulo por slug.
func (r *ModuleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Module, error) {
	return r.getOne(ctx, `SELECT `+moduleColumns+` FROM modules m WHERE m.slug = $1`, slug)
}

func (r *ModuleRepo) getOne(ctx context.Context, query, arg string) (*entity.Module, error) {
	m, err := scanModule(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return m, nil
}

// ListWithStats catálogo por nombre con instalaciones totales y habilitadas.
func (r *ModuleRepo) ListWithStats(ctx context.Context) ([]*entity.ModuleWithStats, error) {
	query := `
		SELECT ` + moduleColumns + `,
			COUNT(fm.id) AS install_count,
			COUNT(fm.id) FILTER (WHERE fm.is_enabled) AS enabled_count
		FROM modules m
		LEFT JOIN firm_modules fm ON fm.module_id = m.id
		GROUP BY m.id
		ORDER BY m.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.ModuleWithStats
	for rows.Next() {
		var installs, enabled int
		m, err := scanModule(rows, &installs, &enabled)
		if err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &entity.ModuleWithStats{Module: *m, InstallCount: installs, EnabledCount: enabled})
	}
	return list, rows.Err()
}

// ListSystem módulos de sistema (se instalan al crear cada firma).
func (r *ModuleRepo) ListSystem(ctx context.Context) ([]*entity.Module, error) {
	rows, err := r.db.Query(ctx, `SELECT `+moduleColumns+` FROM modules m WHERE m.is_system ORDER BY m.name`)
	if err != nil {
		return nil, fmt.Errorf("list system modules: %w", err)
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
