package entity

import "time"

// UserFirm membresía de un usuario en una firma. Único por (UserID, FirmID).
// Es la única fuente de autorización por tenant.
type UserFirm struct {
	ID        string
	UserID    string
	FirmID    string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership firma del usuario junto a su rol (listado "mis firmas").
type Membership struct {
	Firm Firm
	Role Role
}

// Member miembro de una firma con sus datos de usuario.
type Member struct {
	UserFirm
	Email string
	Name  string
}
