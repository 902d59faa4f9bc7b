package entity

import "time"

// Slugs de los módulos que trae el sistema.
const (
	ModuleHR  = "hr"
	ModuleCRM = "crm"
)

// ModuleRoute ruta estática declarada por un módulo. Path es relativo al BasePath del módulo.
// RequiredRoles vacío = visible para cualquier rol permitido por el módulo.
type ModuleRoute struct {
	Path          string `json:"path"`
	Name          string `json:"name"`
	Icon          string `json:"icon,omitempty"`
	RequiredRoles []Role `json:"requiredRoles,omitempty"`
}

// Allows informa si el rol puede ver la ruta.
func (r ModuleRoute) Allows(role Role) bool {
	return len(r.RequiredRoles) == 0 || ContainsRole(r.RequiredRoles, role)
}

// ModuleMetadata lo que se persiste en la columna metadata (JSONB) del módulo.
type ModuleMetadata struct {
	PermittedRoles []Role         `json:"permittedRoles"`
	Routes         []ModuleRoute  `json:"routes"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// Module paquete funcional instalable (HR, CRM...). Compartido por todas las firmas.
type Module struct {
	ID             string
	Slug           string
	Name           string
	Description    string
	Version        string
	BasePath       string
	Icon           string
	IsSystem       bool
	IsActive       bool
	PermittedRoles []Role
	Routes         []ModuleRoute
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Permits informa si el rol está en la lista de roles del módulo.
// Una lista vacía equivale a todos los roles.
func (m *Module) Permits(role Role) bool {
	return len(m.PermittedRoles) == 0 || ContainsRole(m.PermittedRoles, role)
}

// Metadata arma el bloque persistible.
func (m *Module) Metadata() ModuleMetadata {
	return ModuleMetadata{PermittedRoles: m.PermittedRoles, Routes: m.Routes}
}

// ModuleWithStats módulo del catálogo con sus conteos de instalación.
type ModuleWithStats struct {
	Module
	InstallCount int
	EnabledCount int
}
