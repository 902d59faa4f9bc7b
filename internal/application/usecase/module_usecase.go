package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
	"github.com/jhoicas/Holding-api/pkg/slug"
)

// ModuleService administra el catálogo global de módulos.
type ModuleService struct {
	modules repository.ModuleRepository
	members repository.UserFirmRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(modules repository.ModuleRepository, members repository.UserFirmRepository) *ModuleService {
	return &ModuleService{modules: modules, members: members}
}

// Register da de alta un módulo. El llamador debe ser ADMIN u OWNER en alguna firma;
// esa comprobación va antes de validar para no dar pistas a quien no puede registrar.
// Devuelve domain.ErrConflict si el slug ya existe.
func (s *ModuleService) Register(ctx context.Context, actorID string, in dto.RegisterModuleRequest) (*dto.ModuleResponse, error) {
	if actorID == "" {
		return nil, domain.Deny(domain.ReasonUnauthenticated, "sesión requerida")
	}
	allowed, err := s.members.HasAnyRole(ctx, actorID, access.Roles(access.ModulesRegister))
	if err != nil {
		return nil, fmt.Errorf("module: verificar rol: %w", err)
	}
	if !allowed {
		return nil, domain.Deny(domain.ReasonForbidden, "se requiere ADMIN u OWNER en alguna firma")
	}

	m, err := buildModule(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.modules.GetBySlug(ctx, m.Slug)
	if err != nil {
		return nil, fmt.Errorf("module: buscar slug: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict("el módulo %q ya existe", m.Slug)
	}
	// Una alta concurrente con el mismo slug la resuelve la restricción única del almacén.
	if err := s.modules.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toModuleResponse(m)
	return &out, nil
}

func buildModule(in dto.RegisterModuleRequest) (*entity.Module, error) {
	v := domain.NewValidationError()
	in.Slug = strings.TrimSpace(in.Slug)
	if !slug.Valid(in.Slug) {
		v.Add("slug", "sólo minúsculas, dígitos y guiones (ej. recursos-humanos)")
	}
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "requerido")
	}
	if in.BasePath == "" {
		v.Add("basePath", "requerido")
	} else if !strings.HasPrefix(in.BasePath, "/") {
		v.Add("basePath", "debe empezar por /")
	}
	permitted := parseRoles(v, "permittedRoles", in.PermittedRoles)
	routes := make([]entity.ModuleRoute, 0, len(in.Routes))
	for i, r := range in.Routes {
		field := fmt.Sprintf("routes[%d]", i)
		if r.Name == "" {
			v.Add(field+".name", "requerido")
		}
		if r.Path != "" && !strings.HasPrefix(r.Path, "/") {
			v.Add(field+".path", "debe empezar por /")
		}
		routes = append(routes, entity.ModuleRoute{
			Path:          r.Path,
			Name:          r.Name,
			Icon:          r.Icon,
			RequiredRoles: parseRoles(v, field+".requiredRoles", r.RequiredRoles),
		})
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if len(permitted) == 0 {
		permitted = entity.AllRoles()
	}
	version := in.Version
	if version == "" {
		version = "1.0.0"
	}
	now := time.Now()
	return &entity.Module{
		ID:             uuid.New().String(),
		Slug:           in.Slug,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Version:        version,
		BasePath:       strings.TrimRight(in.BasePath, "/"),
		Icon:           in.Icon,
		IsSystem:       in.IsSystem != nil && *in.IsSystem,
		IsActive:       in.IsActive == nil || *in.IsActive,
		PermittedRoles: permitted,
		Routes:         routes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func parseRoles(v *domain.ValidationError, field string, in []string) []entity.Role {
	out := make([]entity.Role, 0, len(in))
	for _, s := range in {
		r, ok := entity.ParseRole(s)
		if !ok {
			v.Add(field, "rol desconocido: "+s)
			continue
		}
		if !entity.ContainsRole(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// List devuelve el catálogo ordenado por nombre con los conteos de instalación.
func (s *ModuleService) List(ctx context.Context) ([]dto.ModuleResponse, error) {
	list, err := s.modules.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("module: listar: %w", err)
	}
	out := make([]dto.ModuleResponse, 0, len(list))
	for _, m := range list {
		r := toModuleResponse(&m.Module)
		installs, enabled := m.InstallCount, m.EnabledCount
		r.InstallCount, r.EnabledCount = &installs, &enabled
		out = append(out, r)
	}
	return out, nil
}

// GetBySlug devuelve domain.ErrNotFound si no existe.
func (s *ModuleService) GetBySlug(ctx context.Context, moduleSlug string) (*dto.ModuleResponse, error) {
	m, err := s.modules.GetBySlug(ctx, moduleSlug)
	if err != nil {
		return nil, fmt.Errorf("module: buscar: %w", err)
	}
	if m == nil {
		return nil, domain.NotFound("módulo")
	}
	out := toModuleResponse(m)
	return &out, nil
}
