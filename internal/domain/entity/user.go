package entity

import "time"

// User representa un usuario del sistema. No pertenece a ninguna firma hasta
// que se vincula mediante UserFirm.
type User struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
