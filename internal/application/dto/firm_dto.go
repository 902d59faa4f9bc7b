package dto

import "time"

// CreateHoldingRequest entrada para crear un holding.
type CreateHoldingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HoldingResponse salida de un holding.
type HoldingResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateFirmRequest entrada para crear una firma. Slug se deriva del nombre si viene vacío.
type CreateFirmRequest struct {
	HoldingID  string `json:"holdingId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ThemeColor string `json:"themeColor"`
}

// UpdateFirmRequest campos opcionales; el slug no se puede cambiar.
type UpdateFirmRequest struct {
	Name       *string `json:"name"`
	ThemeColor *string `json:"themeColor"`
	Slug       *string `json:"slug"`
}

// FirmResponse salida de una firma.
type FirmResponse struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Logo       string    `json:"logo,omitempty"`
	ThemeColor string    `json:"themeColor,omitempty"`
	HoldingID  string    `json:"holdingId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MembershipResponse firma del usuario con su rol.
type MembershipResponse struct {
	Firm FirmResponse `json:"firm"`
	Role string       `json:"role"`
}

// AddMemberRequest vincula un usuario existente por email.
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateMemberRequest cambio de rol.
type UpdateMemberRequest struct {
	Role string `json:"role"`
}

// MemberResponse miembro de una firma.
type MemberResponse struct {
	UserID   string    `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// AuditLogResponse registro de auditoría.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	ActorID   string         `json:"actorId"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityId"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditLogListResponse listado paginado.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
