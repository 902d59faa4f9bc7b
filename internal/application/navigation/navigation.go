// Package navigation compone el menú visible para un usuario en una firma a partir de los
// módulos instalados y habilitados y de su rol. Usa las mismas reglas que el gate: una sección
// de módulo aparece sólo si el gate autorizaría el acceso a ese módulo.
package navigation

import (
	"context"
	"fmt"
	"path"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/pkg/logger"
)

// Kind distingue una navegación compuesta de una degradada.
type Kind string

const (
	Composed Kind = "composed"
	Fallback Kind = "fallback"
)

// Item entrada de menú.
type Item struct {
	Title         string        `json:"title"`
	URL           string        `json:"url"`
	Icon          string        `json:"icon,omitempty"`
	RequiredRoles []entity.Role `json:"requiredRoles,omitempty"`
}

// Section grupo de entradas (la base o un módulo).
type Section struct {
	Title  string `json:"title"`
	Module string `json:"module,omitempty"`
	Icon   string `json:"icon,omitempty"`
	Items  []Item `json:"items"`
}

// Result resultado etiquetado: Composed(sections) o Fallback(sections, reason).
type Result struct {
	Kind     Kind
	Sections []Section
	Reason   string
}

// IsFallback informa si la navegación es la tabla estática de respaldo.
func (r Result) IsFallback() bool { return r.Kind == Fallback }

// ModuleSource lo implementa repository.FirmModuleRepository.
type ModuleSource interface {
	ListEnabledModules(ctx context.Context, firmID string) ([]*entity.Module, error)
}

// Composer construye la navegación.
type Composer struct {
	source ModuleSource
	log    *logger.Logger
}

// NewComposer construye el compositor.
func NewComposer(source ModuleSource, log *logger.Logger) *Composer {
	if log == nil {
		log = logger.Nop()
	}
	return &Composer{source: source, log: log}
}

// Compose nunca falla: si el almacén de instalaciones no responde devuelve la tabla estática
// de StaticFallback marcada como Fallback.
func (c *Composer) Compose(ctx context.Context, firmID, firmSlug string, role entity.Role) Result {
	modules, err := c.source.ListEnabledModules(ctx, firmID)
	if err != nil {
		return c.Degraded(firmSlug, fmt.Errorf("módulos de la firma %s: %w", firmID, err))
	}

	sections := []Section{BaseSection(firmSlug)}
	for _, m := range modules {
		if s, ok := moduleSection(firmSlug, m, role); ok {
			sections = append(sections, s)
		}
	}
	return Result{Kind: Composed, Sections: sections}
}

// Degraded registra err y devuelve la tabla estática. Se usa también cuando falla la
// resolución de la firma o de la membresía antes de poder componer.
func (c *Composer) Degraded(firmSlug string, err error) Result {
	c.log.Warn().Err(err).
		Str("firm_slug", firmSlug).
		Msg("navegación degradada")
	return Result{Kind: Fallback, Sections: StaticFallback(firmSlug), Reason: err.Error()}
}

// BaseSection sección siempre visible.
func BaseSection(firmSlug string) Section {
	return Section{
		Title: "General",
		Items: []Item{
			{Title: "Dashboard", URL: URL(firmSlug, "", ""), Icon: "home"},
			{Title: "Mi cuenta", URL: URL(firmSlug, "/account", ""), Icon: "user"},
		},
	}
}

func moduleSection(firmSlug string, m *entity.Module, role entity.Role) (Section, bool) {
	if !m.IsActive || !m.Permits(role) {
		return Section{}, false
	}
	s := Section{Title: m.Name, Module: m.Slug, Icon: m.Icon}
	if len(m.Routes) == 0 {
		s.Items = []Item{{Title: m.Name, URL: URL(firmSlug, m.BasePath, ""), Icon: m.Icon}}
		return s, true
	}
	for _, r := range m.Routes {
		if !r.Allows(role) {
			continue
		}
		s.Items = append(s.Items, Item{
			Title:         r.Name,
			URL:           URL(firmSlug, m.BasePath, r.Path),
			Icon:          r.Icon,
			RequiredRoles: r.RequiredRoles,
		})
	}
	if len(s.Items) == 0 {
		return Section{}, false
	}
	return s, true
}

// URL arma /{firmSlug}{basePath}{routePath} sin barras duplicadas ni finales.
func URL(firmSlug, basePath, routePath string) string {
	return path.Join("/", firmSlug, basePath, routePath)
}

// StaticFallback tabla fija por slug, sin conocimiento de módulos ni roles.
// Puede mostrar enlaces a módulos no disponibles.
func StaticFallback(firmSlug string) []Section {
	return []Section{
		BaseSection(firmSlug),
		{
			Title:  "Recursos Humanos",
			Module: entity.ModuleHR,
			Icon:   "users",
			Items: []Item{
				{Title: "Empleados", URL: URL(firmSlug, "/hr", "/employees"), Icon: "id-card"},
				{Title: "Departamentos", URL: URL(firmSlug, "/hr", "/departments"), Icon: "sitemap"},
				{Title: "Contratos", URL: URL(firmSlug, "/hr", "/contracts"), Icon: "file-signature"},
			},
		},
		{
			Title:  "CRM",
			Module: entity.ModuleCRM,
			Icon:   "handshake",
			Items: []Item{
				{Title: "Clientes", URL: URL(firmSlug, "/crm", "/clients"), Icon: "address-book"},
			},
		},
	}
}
