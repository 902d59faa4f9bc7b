// Package access centraliza la tabla de capacidades: qué roles pueden ejecutar cada operación.
// El gate y el compositor de navegación consultan la misma tabla.
package access

import "github.com/jhoicas/Holding-api/internal/domain/entity"

// Operation identificador de una operación protegida.
type Operation string

const (
	FirmView          Operation = "firm.view"
	FirmUpdate        Operation = "firm.update"
	MembersView       Operation = "members.view"
	MembersManage     Operation = "members.manage"
	MembersChangeRole Operation = "members.role"
	MembersRemove     Operation = "members.remove"
	ModulesView       Operation = "modules.view"
	ModulesManage     Operation = "modules.manage"
	ModulesRegister   Operation = "modules.register"
	NavigationView    Operation = "navigation.view"
	AuditView         Operation = "audit.view"

	DepartmentsView   Operation = "hr.departments.view"
	DepartmentsManage Operation = "hr.departments.manage"
	EmployeesView     Operation = "hr.employees.view"
	EmployeesManage   Operation = "hr.employees.manage"
	EmployeesImport   Operation = "hr.employees.import"
	ContractsView     Operation = "hr.contracts.view"
	ContractsManage   Operation = "hr.contracts.manage"
	TransfersView     Operation = "hr.transfers.view"
	TransfersRequest  Operation = "hr.transfers.request"
	TransfersDecide   Operation = "hr.transfers.decide"

	ClientsView   Operation = "crm.clients.view"
	ClientsManage Operation = "crm.clients.manage"
)

var (
	everyone  = entity.AllRoles()
	ownerOnly = []entity.Role{entity.RoleOwner}
	admins    = []entity.Role{entity.RoleOwner, entity.RoleAdmin}
	managers  = []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleManager}
	operators = []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleManager, entity.RoleStaff}
)

var table = map[Operation][]entity.Role{
	FirmView:          everyone,
	FirmUpdate:        admins,
	MembersView:       everyone,
	MembersManage:     admins,
	MembersChangeRole: ownerOnly,
	MembersRemove:     ownerOnly,
	ModulesView:       everyone,
	ModulesManage:     admins,
	ModulesRegister:   admins,
	NavigationView:    everyone,
	AuditView:         admins,

	DepartmentsView:   everyone,
	DepartmentsManage: managers,
	EmployeesView:     everyone,
	EmployeesManage:   managers,
	EmployeesImport:   admins,
	ContractsView:     managers,
	ContractsManage:   managers,
	TransfersView:     managers,
	TransfersRequest:  managers,
	TransfersDecide:   managers,

	ClientsView:   everyone,
	ClientsManage: operators,
}

// Roles devuelve la lista de roles permitidos para op (copia). Una operación
// desconocida no permite a nadie.
func Roles(op Operation) []entity.Role {
	roles := table[op]
	out := make([]entity.Role, len(roles))
	copy(out, roles)
	return out
}

// Allowed informa si role puede ejecutar op.
func Allowed(op Operation, role entity.Role) bool {
	return entity.ContainsRole(table[op], role)
}

// Known informa si op está registrada en la tabla.
func Known(op Operation) bool {
	_, ok := table[op]
	return ok
}
