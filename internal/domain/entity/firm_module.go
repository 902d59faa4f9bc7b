package entity

import (
	"encoding/json"
	"time"
)

// FirmModule instalación de un módulo en una firma. Único por (FirmID, ModuleID).
// Que exista la fila = instalado; IsEnabled decide si está accesible.
type FirmModule struct {
	ID          string
	FirmID      string
	ModuleID    string
	IsEnabled   bool
	Settings    json.RawMessage // configuración opaca por firma; sólo uninstall la descarta
	InstalledBy string
	InstalledAt time.Time
	UpdatedAt   time.Time

	// Module se llena en lecturas con join (puede ser nil).
	Module *Module
}
