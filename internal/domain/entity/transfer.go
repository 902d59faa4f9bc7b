package entity

import "time"

// Estados de Transfer.
const (
	TransferPending  = "PENDING"
	TransferApproved = "APPROVED"
	TransferRejected = "REJECTED"
)

// Transfer solicitud de traslado de un empleado entre dos firmas del mismo holding.
type Transfer struct {
	ID          string
	EmployeeID  string
	FromFirmID  string
	ToFirmID    string
	Status      string
	Reason      string
	RequestedBy string
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
