package dto

import (
	"encoding/json"
	"time"
)

// ModuleRouteDTO ruta declarada por un módulo.
type ModuleRouteDTO struct {
	Path          string   `json:"path"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon,omitempty"`
	RequiredRoles []string `json:"requiredRoles,omitempty"`
}

// RegisterModuleRequest alta de un módulo en el catálogo.
type RegisterModuleRequest struct {
	Slug           string           `json:"slug"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Version        string           `json:"version"`
	BasePath       string           `json:"basePath"`
	Icon           string           `json:"icon"`
	IsSystem       *bool            `json:"isSystem"`
	IsActive       *bool            `json:"isActive"`
	PermittedRoles []string         `json:"permittedRoles"`
	Routes         []ModuleRouteDTO `json:"routes"`
}

// ModuleResponse módulo del catálogo. Los conteos sólo se informan en el listado.
type ModuleResponse struct {
	ID             string           `json:"id"`
	Slug           string           `json:"slug"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Version        string           `json:"version"`
	BasePath       string           `json:"basePath"`
	Icon           string           `json:"icon,omitempty"`
	IsSystem       bool             `json:"isSystem"`
	IsActive       bool             `json:"isActive"`
	PermittedRoles []string         `json:"permittedRoles"`
	Routes         []ModuleRouteDTO `json:"routes"`
	InstallCount   *int             `json:"installCount,omitempty"`
	EnabledCount   *int             `json:"enabledCount,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// InstallModuleRequest POST /firms/{id}/modules.
type InstallModuleRequest struct {
	ModuleID  string          `json:"moduleId"`
	IsEnabled *bool           `json:"isEnabled"`
	Settings  json.RawMessage `json:"settings"`
}

// UpdateFirmModuleRequest PATCH parcial: sólo cambian los campos presentes.
type UpdateFirmModuleRequest struct {
	IsEnabled *bool           `json:"isEnabled"`
	Settings  json.RawMessage `json:"settings"`
}

// FirmModuleResponse instalación con su módulo.
type FirmModuleResponse struct {
	ID          string          `json:"id"`
	FirmID      string          `json:"firmId"`
	ModuleID    string          `json:"moduleId"`
	IsEnabled   bool            `json:"isEnabled"`
	Settings    json.RawMessage `json:"settings"`
	InstalledBy string          `json:"installedBy,omitempty"`
	InstalledAt time.Time       `json:"installedAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Module      *ModuleResponse `json:"module,omitempty"`
}
