package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Holdings    HoldingRepository
	Firms       FirmRepository
	Users       UserRepository
	Members     UserFirmRepository
	Modules     ModuleRepository
	FirmModules FirmModuleRepository
	Audit       AuditLogRepository
	Departments DepartmentRepository
	Employees   EmployeeRepository
	Contracts   ContractRepository
	Transfers   TransferRepository
	Clients     ClientRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Garantiza que la mutación principal y su registro de auditoría sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
