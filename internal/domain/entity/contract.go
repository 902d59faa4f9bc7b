package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de contrato.
const (
	ContractPermanent  = "PERMANENT"
	ContractFixedTerm  = "FIXED_TERM"
	ContractInternship = "INTERNSHIP"
	ContractFreelance  = "FREELANCE"
)

// Estados de Contract.
const (
	ContractActive     = "active"
	ContractTerminated = "terminated"
)

// ValidContractType informa si t es un tipo de contrato conocido.
func ValidContractType(t string) bool {
	switch t {
	case ContractPermanent, ContractFixedTerm, ContractInternship, ContractFreelance:
		return true
	}
	return false
}

// Contract contrato laboral de un empleado.
type Contract struct {
	ID                string
	FirmID            string
	EmployeeID        string
	Type              string
	StartDate         time.Time
	EndDate           *time.Time
	Salary            decimal.Decimal
	Status            string
	TerminatedAt      *time.Time
	TerminationReason string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
