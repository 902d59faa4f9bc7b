package entity

import "time"

// Client cliente del módulo CRM de una firma.
type Client struct {
	ID        string
	FirmID    string
	Name      string
	Email     string
	Phone     string
	Company   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
