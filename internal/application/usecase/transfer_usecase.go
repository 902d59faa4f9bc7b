package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// TransferUseCase traslados de empleados entre firmas del mismo holding.
// La firma de origen solicita; sólo la firma destino aprueba o rechaza.
type TransferUseCase struct {
	transfers repository.TransferRepository
	employees repository.EmployeeRepository
	firms     repository.FirmRepository
	bindings  repository.FirmModuleRepository
	tx        repository.TxRunner
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	transfers repository.TransferRepository,
	employees repository.EmployeeRepository,
	firms repository.FirmRepository,
	bindings repository.FirmModuleRepository,
	tx repository.TxRunner,
) *TransferUseCase {
	return &TransferUseCase{transfers: transfers, employees: employees, firms: firms, bindings: bindings, tx: tx}
}

// Request crea un traslado PENDING. Destino: otra firma del mismo holding con RR.HH. activo.
func (uc *TransferUseCase) Request(ctx context.Context, actor Actor, in dto.RequestTransferRequest) (*dto.TransferResponse, error) {
	if err := actor.require(access.TransfersRequest); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	if in.EmployeeID == "" {
		v.Add("employeeId", "requerido")
	}
	if in.ToFirmID == "" {
		v.Add("toFirmId", "requerido")
	} else if in.ToFirmID == actor.FirmID {
		v.Add("toFirmId", "debe ser otra firma")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	emp, err := uc.employees.GetByID(ctx, actor.FirmID, in.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("transfers: empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.NotFound("empleado")
	}
	from, err := uc.firms.GetByID(ctx, actor.FirmID)
	if err != nil {
		return nil, fmt.Errorf("transfers: firma origen: %w", err)
	}
	to, err := uc.firms.GetByID(ctx, in.ToFirmID)
	if err != nil {
		return nil, fmt.Errorf("transfers: firma destino: %w", err)
	}
	if from == nil || to == nil || to.HoldingID != from.HoldingID {
		return nil, domain.NotFound("firma destino")
	}
	active, err := uc.bindings.HasActiveModule(ctx, to.ID, entity.ModuleHR)
	if err != nil {
		return nil, fmt.Errorf("transfers: módulo destino: %w", err)
	}
	if !active {
		return nil, domain.Invalid("toFirmId", "la firma destino no tiene RR.HH. activo")
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:          uuid.New().String(),
		EmployeeID:  emp.ID,
		FromFirmID:  from.ID,
		ToFirmID:    to.ID,
		Status:      entity.TransferPending,
		Reason:      strings.TrimSpace(in.Reason),
		RequestedBy: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		pending, err := repos.Transfers.HasPending(ctx, emp.ID)
		if err != nil {
			return fmt.Errorf("transfers: pendientes: %w", err)
		}
		if pending {
			return domain.Conflict("el empleado ya tiene un traslado pendiente")
		}
		if err := repos.Transfers.Create(ctx, t); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditTransferRequest, "transfer", t.ID, map[string]any{
			"employeeId": emp.ID,
			"toFirmId":   to.ID,
		}))
	})
	if err != nil {
		return nil, err
	}
	out := toTransferResponse(t)
	return &out, nil
}

// List traslados donde la firma es origen o destino.
func (uc *TransferUseCase) List(ctx context.Context, actor Actor) ([]dto.TransferResponse, error) {
	if err := actor.require(access.TransfersView); err != nil {
		return nil, err
	}
	list, err := uc.transfers.ListByFirm(ctx, actor.FirmID)
	if err != nil {
		return nil, fmt.Errorf("transfers: listar: %w", err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return out, nil
}

// Approve mueve al empleado a la firma destino (sin departamento). Matrícula ocupada en destino → 409.
func (uc *TransferUseCase) Approve(ctx context.Context, actor Actor, id string, in dto.DecideTransferRequest) (*dto.TransferResponse, error) {
	return uc.decide(ctx, actor, id, entity.TransferApproved, in.Reason)
}

// Reject cierra el traslado sin mover al empleado.
func (uc *TransferUseCase) Reject(ctx context.Context, actor Actor, id string, in dto.DecideTransferRequest) (*dto.TransferResponse, error) {
	return uc.decide(ctx, actor, id, entity.TransferRejected, in.Reason)
}

func (uc *TransferUseCase) decide(ctx context.Context, actor Actor, id, status, reason string) (*dto.TransferResponse, error) {
	if err := actor.require(access.TransfersDecide); err != nil {
		return nil, err
	}
	var t *entity.Transfer
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		t, err = repos.Transfers.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("transfers: leer: %w", err)
		}
		// Para la firma origen y para terceros el traslado no existe.
		if t == nil || t.ToFirmID != actor.FirmID {
			if t != nil && t.FromFirmID == actor.FirmID {
				return domain.Deny(domain.ReasonForbidden, "sólo la firma destino decide el traslado")
			}
			return domain.NotFound("traslado")
		}
		if t.Status != entity.TransferPending {
			return domain.Conflict("el traslado ya fue decidido")
		}

		now := time.Now()
		if status == entity.TransferApproved {
			emp, err := repos.Employees.GetByID(ctx, t.FromFirmID, t.EmployeeID)
			if err != nil {
				return fmt.Errorf("transfers: empleado: %w", err)
			}
			if emp == nil {
				return domain.Conflict("el empleado ya no pertenece a la firma origen")
			}
			emp.FirmID = t.ToFirmID
			emp.DepartmentID = nil
			emp.UpdatedAt = now
			if err := repos.Employees.Update(ctx, emp); err != nil {
				return err
			}
		}

		decidedBy := actor.UserID
		t.Status = status
		t.DecidedBy = &decidedBy
		t.DecidedAt = &now
		t.UpdatedAt = now
		if reason = strings.TrimSpace(reason); reason != "" {
			t.Reason = reason
		}
		if err := repos.Transfers.Update(ctx, t); err != nil {
			return fmt.Errorf("transfers: actualizar: %w", err)
		}
		action := entity.AuditTransferApprove
		if status == entity.TransferRejected {
			action = entity.AuditTransferReject
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, action, "transfer", t.ID, map[string]any{
			"employeeId": t.EmployeeID,
			"fromFirmId": t.FromFirmID,
		}))
	})
	if err != nil {
		return nil, err
	}
	out := toTransferResponse(t)
	return &out, nil
}
