package repository

import (
	"context"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// ModuleRepository puerto del catálogo de módulos.
type ModuleRepository interface {
	// Create devuelve domain.ErrConflict si el slug ya existe.
	Create(ctx context.Context, m *entity.Module) error
	GetByID(ctx context.Context, id string) (*entity.Module, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Module, error)
	// ListWithStats ordena por nombre y anota conteos de instalación.
	ListWithStats(ctx context.Context) ([]*entity.ModuleWithStats, error)
	ListSystem(ctx context.Context) ([]*entity.Module, error)
}

// FirmModuleRepository puerto de las instalaciones módulo-firma.
type FirmModuleRepository interface {
	// Create devuelve domain.ErrConflict si ya existe la pareja (firm, module).
	Create(ctx context.Context, fm *entity.FirmModule) error
	// Get incluye el Module asociado.
	Get(ctx context.Context, firmID, moduleID string) (*entity.FirmModule, error)
	Update(ctx context.Context, fm *entity.FirmModule) error
	// Delete devuelve false si no había instalación.
	Delete(ctx context.Context, firmID, moduleID string) (bool, error)
	// ListByFirm devuelve las instalaciones con su Module, ordenadas por nombre de módulo.
	ListByFirm(ctx context.Context, firmID string) ([]*entity.FirmModule, error)
	// ListEnabledModules módulos instalados, habilitados y activos de la firma, por nombre.
	ListEnabledModules(ctx context.Context, firmID string) ([]*entity.Module, error)
	HasActiveModule(ctx context.Context, firmID, moduleSlug string) (bool, error)
}
