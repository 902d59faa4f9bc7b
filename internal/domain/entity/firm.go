package entity

import "time"

// Firm es el tenant: unidad de aislamiento de datos y de instalación de módulos.
// El slug es único global e inmutable (las URLs dependen de él).
type Firm struct {
	ID         string
	Slug       string
	Name       string
	Logo       string // URL pública del logo (vacío = sin logo)
	ThemeColor string
	HoldingID  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
