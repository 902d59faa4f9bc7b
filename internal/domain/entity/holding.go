package entity

import "time"

// Holding dueño organizativo de una o más firmas.
type Holding struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
