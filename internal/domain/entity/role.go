package entity

import "strings"

// Role rol de un usuario dentro de una firma. Es un enum sin orden: cada operación
// declara su propia lista de roles permitidos (ver internal/domain/access).
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
	RoleViewer  Role = "VIEWER"
)

// AllRoles devuelve todos los roles válidos.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleManager, RoleStaff, RoleViewer}
}

// ParseRole convierte un string (sin distinguir mayúsculas) en Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid informa si el rol pertenece al enum.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// ContainsRole busca r en la lista.
func ContainsRole(list []Role, r Role) bool {
	for _, x := range list {
		if x == r {
			return true
		}
	}
	return false
}
