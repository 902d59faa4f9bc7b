package entity

import "time"

// Department departamento de RR.HH. dentro de una firma.
type Department struct {
	ID          string
	FirmID      string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
