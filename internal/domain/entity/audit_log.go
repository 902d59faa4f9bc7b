package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditadas.
const (
	AuditFirmCreate      = "firm.create"
	AuditFirmUpdate      = "firm.update"
	AuditFirmLogo        = "firm.logo"
	AuditMemberAdd       = "member.add"
	AuditMemberRole      = "member.role"
	AuditMemberRemove    = "member.remove"
	AuditModuleInstall   = "module.install"
	AuditModuleUpdate    = "module.update"
	AuditModuleUninstall = "module.uninstall"
	AuditEmployeeImport  = "employee.import"
	AuditContractCreate  = "contract.create"
	AuditContractEnd     = "contract.terminate"
	AuditTransferRequest = "transfer.request"
	AuditTransferApprove = "transfer.approve"
	AuditTransferReject  = "transfer.reject"
	AuditPasswordChange  = "user.password_change"
)

// AuditLog registro append-only de una mutación privilegiada.
// FirmID es nil para acciones sin tenant (cambio de contraseña).
type AuditLog struct {
	ID        string
	FirmID    *string
	ActorID   string
	Action    string
	Entity    string
	EntityID  string
	Metadata  json.RawMessage
	CreatedAt time.Time
}
