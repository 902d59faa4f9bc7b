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
	"github.com/jhoicas/Holding-api/pkg/logger"
)

// ContractUseCase contratos laborales. La terminación (manual o por vencimiento) se audita
// en la misma transacción.
type ContractUseCase struct {
	contracts repository.ContractRepository
	employees repository.EmployeeRepository
	tx        repository.TxRunner
	log       *logger.Logger
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(contracts repository.ContractRepository, employees repository.EmployeeRepository, tx repository.TxRunner, log *logger.Logger) *ContractUseCase {
	return &ContractUseCase{contracts: contracts, employees: employees, tx: tx, log: log}
}

// Create valida tipo y fechas. FIXED_TERM e INTERNSHIP exigen fecha de fin.
func (uc *ContractUseCase) Create(ctx context.Context, actor Actor, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := actor.require(access.ContractsManage); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	typ := strings.ToUpper(strings.TrimSpace(in.Type))
	if !entity.ValidContractType(typ) {
		v.Add("type", "tipo de contrato desconocido")
	}
	if in.EmployeeID == "" {
		v.Add("employeeId", "requerido")
	}
	start := parseDate(v, "startDate", in.StartDate, true)
	var end *time.Time
	if in.EndDate != nil && *in.EndDate != "" {
		t := parseDate(v, "endDate", *in.EndDate, true)
		end = &t
	}
	if end == nil && (typ == entity.ContractFixedTerm || typ == entity.ContractInternship) {
		v.Add("endDate", "requerido para "+typ)
	}
	if end != nil && !start.IsZero() && !end.IsZero() && !end.After(start) {
		v.Add("endDate", "debe ser posterior a startDate")
	}
	if in.Salary.IsNegative() {
		v.Add("salary", "no puede ser negativo")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	emp, err := uc.employees.GetByID(ctx, actor.FirmID, in.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("contracts: empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.NotFound("empleado")
	}
	now := time.Now()
	c := &entity.Contract{
		ID:         uuid.New().String(),
		FirmID:     actor.FirmID,
		EmployeeID: emp.ID,
		Type:       typ,
		StartDate:  start,
		EndDate:    end,
		Salary:     in.Salary,
		Status:     entity.ContractActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Contracts.Create(ctx, c); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditContractCreate, "contract", c.ID, map[string]any{
			"employeeId": emp.ID,
			"type":       typ,
		}))
	})
	if err != nil {
		return nil, err
	}
	out := toContractResponse(c)
	return &out, nil
}

// List contratos de la firma, opcionalmente de un empleado.
func (uc *ContractUseCase) List(ctx context.Context, actor Actor, employeeID string) ([]dto.ContractResponse, error) {
	if err := actor.require(access.ContractsView); err != nil {
		return nil, err
	}
	list, err := uc.contracts.ListByFirm(ctx, actor.FirmID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("contracts: listar: %w", err)
	}
	out := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContractResponse(c))
	}
	return out, nil
}

// Terminate termina un contrato activo. Uno ya terminado es un conflicto.
func (uc *ContractUseCase) Terminate(ctx context.Context, actor Actor, id string, in dto.TerminateContractRequest) (*dto.ContractResponse, error) {
	if err := actor.require(access.ContractsManage); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Invalid("reason", "requerido")
	}
	var c *entity.Contract
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		c, err = repos.Contracts.GetByID(ctx, actor.FirmID, id)
		if err != nil {
			return fmt.Errorf("contracts: leer: %w", err)
		}
		if c == nil {
			return domain.NotFound("contrato")
		}
		if c.Status != entity.ContractActive {
			return domain.Conflict("el contrato ya está terminado")
		}
		return terminate(ctx, repos, c, actor.UserID, reason, time.Now())
	})
	if err != nil {
		return nil, err
	}
	out := toContractResponse(c)
	return &out, nil
}

func terminate(ctx context.Context, repos repository.TxRepos, c *entity.Contract, actorID, reason string, at time.Time) error {
	c.Status = entity.ContractTerminated
	c.TerminatedAt = &at
	c.TerminationReason = reason
	c.UpdatedAt = at
	if err := repos.Contracts.Update(ctx, c); err != nil {
		return fmt.Errorf("contracts: actualizar: %w", err)
	}
	firmID := c.FirmID
	return writeAudit(ctx, repos.Audit, auditEntry{
		firmID: &firmID, actorID: actorID, action: entity.AuditContractEnd,
		entity: "contract", entityID: c.ID, meta: map[string]any{"reason": reason},
	})
}

// ExpireDue termina los contratos activos cuya fecha de fin ya pasó. Cada contrato va en su
// propia transacción: un fallo no bloquea al resto. Devuelve cuántos se terminaron.
func (uc *ContractUseCase) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	due, err := uc.contracts.ListExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("contracts: vencidos: %w", err)
	}
	done := 0
	for _, c := range due {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
			return terminate(ctx, repos, c, SystemActorID, "vencimiento", now)
		})
		if err != nil {
			uc.log.Error().Err(err).Str("contract_id", c.ID).Msg("no se pudo terminar el contrato vencido")
			continue
		}
		done++
	}
	return done, nil
}
