package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions   SessionResolver
	Gate       Authorizer
	Auth       *AuthHandler
	Firms      *FirmHandler
	Members    *MemberHandler
	Modules    *ModuleHandler
	Navigation *NavigationHandler
	HR         *HRHandler
	CRM        *CRMHandler
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	// Auth (público)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)

	// Todo lo demás requiere sesión.
	protected := app.Group("/", AuthMiddleware(deps.Sessions))
	protected.Get("/auth/me", deps.Auth.Me)
	protected.Post("/auth/password", deps.Auth.ChangePassword)

	protected.Get("/holdings", deps.Firms.ListHoldings)
	protected.Post("/holdings", deps.Firms.CreateHolding)

	// Catálogo de módulos
	protected.Get("/modules", deps.Modules.ListCatalog)
	protected.Post("/modules", deps.Modules.Register)
	protected.Get("/modules/:slug", deps.Modules.GetModule)

	// El handler autoriza por su cuenta: un fallo del almacén degrada a la tabla estática.
	protected.Get("/navigation", deps.Navigation.Get)

	protected.Post("/firms", deps.Firms.Create)
	protected.Get("/firms", deps.Firms.ListMine)

	gate := func(op access.Operation) fiber.Handler { return RequireFirmAccess(deps.Gate, op, "") }
	hr := func(op access.Operation) fiber.Handler { return RequireFirmAccess(deps.Gate, op, entity.ModuleHR) }
	crm := func(op access.Operation) fiber.Handler { return RequireFirmAccess(deps.Gate, op, entity.ModuleCRM) }

	firm := protected.Group("/firms/:id")
	firm.Get("/", gate(access.FirmView), deps.Firms.Get)
	firm.Patch("/", gate(access.FirmUpdate), deps.Firms.Update)
	firm.Post("/logo", gate(access.FirmUpdate), deps.Firms.UploadLogo)
	firm.Get("/audit-logs", gate(access.AuditView), deps.Firms.AuditLogs)

	// Miembros
	firm.Get("/members", gate(access.MembersView), deps.Members.List)
	firm.Post("/members", gate(access.MembersManage), deps.Members.Add)
	firm.Patch("/members/:userId", gate(access.MembersChangeRole), deps.Members.ChangeRole)
	firm.Delete("/members/:userId", gate(access.MembersRemove), deps.Members.Remove)

	// Módulos instalados
	firm.Get("/modules", gate(access.ModulesView), deps.Modules.ListInstalled)
	firm.Post("/modules", gate(access.ModulesManage), deps.Modules.Install)
	firm.Patch("/modules/:moduleId", gate(access.ModulesManage), deps.Modules.UpdateInstalled)
	firm.Delete("/modules/:moduleId", gate(access.ModulesManage), deps.Modules.Uninstall)

	// RR.HH.
	firm.Get("/hr/departments", hr(access.DepartmentsView), deps.HR.ListDepartments)
	firm.Post("/hr/departments", hr(access.DepartmentsManage), deps.HR.CreateDepartment)
	firm.Get("/hr/employees", hr(access.EmployeesView), deps.HR.ListEmployees)
	firm.Post("/hr/employees", hr(access.EmployeesManage), deps.HR.CreateEmployee)
	firm.Post("/hr/employees/import", hr(access.EmployeesImport), deps.HR.ImportEmployees)
	firm.Get("/hr/employees/:employeeId", hr(access.EmployeesView), deps.HR.GetEmployee)
	firm.Get("/hr/contracts", hr(access.ContractsView), deps.HR.ListContracts)
	firm.Post("/hr/contracts", hr(access.ContractsManage), deps.HR.CreateContract)
	firm.Post("/hr/contracts/:contractId/terminate", hr(access.ContractsManage), deps.HR.TerminateContract)
	firm.Get("/hr/transfers", hr(access.TransfersView), deps.HR.ListTransfers)
	firm.Post("/hr/transfers", hr(access.TransfersRequest), deps.HR.RequestTransfer)
	firm.Post("/hr/transfers/:transferId/approve", hr(access.TransfersDecide), deps.HR.ApproveTransfer)
	firm.Post("/hr/transfers/:transferId/reject", hr(access.TransfersDecide), deps.HR.RejectTransfer)

	// CRM
	firm.Get("/crm/clients", crm(access.ClientsView), deps.CRM.List)
	firm.Post("/crm/clients", crm(access.ClientsManage), deps.CRM.Create)
	firm.Patch("/crm/clients/:clientId", crm(access.ClientsManage), deps.CRM.Update)
	firm.Delete("/crm/clients/:clientId", crm(access.ClientsManage), deps.CRM.Delete)
}
