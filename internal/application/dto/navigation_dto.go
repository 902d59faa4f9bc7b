package dto

import "github.com/jhoicas/Holding-api/internal/application/navigation"

// NavigationResponse GET /navigation. En modo degradado Fallback=true y UserRole vacío.
type NavigationResponse struct {
	Navigation []navigation.Section `json:"navigation"`
	FirmSlug   string               `json:"firmSlug"`
	UserRole   string               `json:"userRole,omitempty"`
	Fallback   bool                 `json:"fallback,omitempty"`
}
