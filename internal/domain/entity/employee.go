package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Employee.
const (
	EmployeeActive     = "active"
	EmployeeTerminated = "terminated"
)

// Employee empleado de una firma. La matrícula es única dentro de la firma.
type Employee struct {
	ID           string
	FirmID       string
	DepartmentID *string
	Matricule    string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Position     string
	Salary       decimal.Decimal
	HireDate     time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
