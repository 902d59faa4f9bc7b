package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDepartmentRequest alta de departamento.
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DepartmentResponse salida de departamento.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateEmployeeRequest alta de empleado. HireDate en formato YYYY-MM-DD (vacío = hoy).
type CreateEmployeeRequest struct {
	Matricule    string          `json:"matricule"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Position     string          `json:"position"`
	DepartmentID *string         `json:"departmentId"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     string          `json:"hireDate"`
}

// ImportEmployeesRequest importación masiva atómica.
type ImportEmployeesRequest struct {
	Employees []CreateEmployeeRequest `json:"employees"`
}

// ImportEmployeesResponse resultado de la importación.
type ImportEmployeesResponse struct {
	Imported  int                `json:"imported"`
	Employees []EmployeeResponse `json:"employees"`
}

// EmployeeResponse salida de empleado.
type EmployeeResponse struct {
	ID           string          `json:"id"`
	FirmID       string          `json:"firmId"`
	DepartmentID *string         `json:"departmentId,omitempty"`
	Matricule    string          `json:"matricule"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Position     string          `json:"position,omitempty"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     string          `json:"hireDate"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// EmployeeListResponse listado paginado.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateContractRequest alta de contrato. Fechas YYYY-MM-DD.
type CreateContractRequest struct {
	EmployeeID string          `json:"employeeId"`
	Type       string          `json:"type"`
	StartDate  string          `json:"startDate"`
	EndDate    *string         `json:"endDate"`
	Salary     decimal.Decimal `json:"salary"`
}

// TerminateContractRequest terminación anticipada.
type TerminateContractRequest struct {
	Reason string `json:"reason"`
}

// ContractResponse salida de contrato.
type ContractResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employeeId"`
	Type              string          `json:"type"`
	StartDate         string          `json:"startDate"`
	EndDate           *string         `json:"endDate,omitempty"`
	Salary            decimal.Decimal `json:"salary"`
	Status            string          `json:"status"`
	TerminatedAt      *time.Time      `json:"terminatedAt,omitempty"`
	TerminationReason string          `json:"terminationReason,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// RequestTransferRequest solicitud de traslado desde la firma actual.
type RequestTransferRequest struct {
	EmployeeID string `json:"employeeId"`
	ToFirmID   string `json:"toFirmId"`
	Reason     string `json:"reason"`
}

// DecideTransferRequest aprobación o rechazo.
type DecideTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferResponse salida de traslado.
type TransferResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	FromFirmID  string     `json:"fromFirmId"`
	ToFirmID    string     `json:"toFirmId"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	RequestedBy string     `json:"requestedBy"`
	DecidedBy   *string    `json:"decidedBy,omitempty"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
