package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// MaxImportBatch filas máximas por importación.
const MaxImportBatch = 1000

// EmployeeUseCase empleados del módulo de RR.HH., incluida la importación masiva atómica.
type EmployeeUseCase struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	tx          repository.TxRunner
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employees repository.EmployeeRepository, departments repository.DepartmentRepository, tx repository.TxRunner) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, departments: departments, tx: tx}
}

// buildEmployee valida una fila; prefix distingue filas de una importación ("employees[3].").
func buildEmployee(v *domain.ValidationError, prefix, firmID string, in dto.CreateEmployeeRequest, now time.Time) *entity.Employee {
	e := &entity.Employee{
		ID:           uuid.New().String(),
		FirmID:       firmID,
		DepartmentID: in.DepartmentID,
		Matricule:    strings.TrimSpace(in.Matricule),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		Position:     strings.TrimSpace(in.Position),
		Salary:       in.Salary,
		Status:       entity.EmployeeActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if e.Matricule == "" {
		v.Add(prefix+"matricule", "requerido")
	}
	if e.FirstName == "" {
		v.Add(prefix+"firstName", "requerido")
	}
	if e.LastName == "" {
		v.Add(prefix+"lastName", "requerido")
	}
	if e.Email != "" {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			v.Add(prefix+"email", "email inválido")
		}
	}
	if e.Salary.IsNegative() {
		v.Add(prefix+"salary", "no puede ser negativo")
	}
	if in.DepartmentID != nil && *in.DepartmentID == "" {
		e.DepartmentID = nil
	}
	e.HireDate = parseDate(v, prefix+"hireDate", in.HireDate, false)
	if e.HireDate.IsZero() {
		e.HireDate = now.Truncate(24 * time.Hour)
	}
	return e
}

func (uc *EmployeeUseCase) checkDepartments(ctx context.Context, departments repository.DepartmentRepository, firmID string, list []*entity.Employee) error {
	seen := map[string]bool{}
	for _, e := range list {
		if e.DepartmentID == nil || seen[*e.DepartmentID] {
			continue
		}
		seen[*e.DepartmentID] = true
		d, err := departments.GetByID(ctx, firmID, *e.DepartmentID)
		if err != nil {
			return fmt.Errorf("employees: departamento: %w", err)
		}
		if d == nil {
			return domain.Invalid("departmentId", "departamento inexistente en la firma")
		}
	}
	return nil
}

// Create alta individual. Matrícula repetida en la firma → 409.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := actor.require(access.EmployeesManage); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	e := buildEmployee(v, "", actor.FirmID, in, time.Now())
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := uc.checkDepartments(ctx, uc.departments, actor.FirmID, []*entity.Employee{e}); err != nil {
		return nil, err
	}
	if err := uc.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	out := toEmployeeResponse(e)
	return &out, nil
}

// Import crea todas las filas o ninguna. Una matrícula repetida dentro del lote o ya existente
// en la firma rechaza el lote completo con Conflict.
func (uc *EmployeeUseCase) Import(ctx context.Context, actor Actor, in dto.ImportEmployeesRequest) (*dto.ImportEmployeesResponse, error) {
	if err := actor.require(access.EmployeesImport); err != nil {
		return nil, err
	}
	if len(in.Employees) == 0 {
		return nil, domain.Invalid("employees", "lista vacía")
	}
	if len(in.Employees) > MaxImportBatch {
		return nil, domain.Invalid("employees", fmt.Sprintf("máximo %d filas por importación", MaxImportBatch))
	}

	now := time.Now()
	v := domain.NewValidationError()
	list := make([]*entity.Employee, 0, len(in.Employees))
	for i, row := range in.Employees {
		list = append(list, buildEmployee(v, fmt.Sprintf("employees[%d].", i), actor.FirmID, row, now))
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	matricules := make([]string, 0, len(list))
	seen := map[string]bool{}
	var dup []string
	for _, e := range list {
		if seen[e.Matricule] {
			dup = append(dup, e.Matricule)
			continue
		}
		seen[e.Matricule] = true
		matricules = append(matricules, e.Matricule)
	}
	if len(dup) > 0 {
		return nil, domain.Conflict("matrícula duplicada en el lote: %s", strings.Join(dup, ", "))
	}

	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := uc.checkDepartments(ctx, repos.Departments, actor.FirmID, list); err != nil {
			return err
		}
		existing, err := repos.Employees.ExistingMatricules(ctx, actor.FirmID, matricules)
		if err != nil {
			return fmt.Errorf("employees: matrículas existentes: %w", err)
		}
		if len(existing) > 0 {
			sort.Strings(existing)
			return domain.Conflict("matrícula ya registrada en la firma: %s", strings.Join(existing, ", "))
		}
		if err := repos.Employees.CreateBatch(ctx, list); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditEmployeeImport, "employee", "", map[string]any{
			"count": len(list),
		}))
	})
	if err != nil {
		return nil, err
	}

	out := &dto.ImportEmployeesResponse{Imported: len(list), Employees: make([]dto.EmployeeResponse, 0, len(list))}
	for _, e := range list {
		out.Employees = append(out.Employees, toEmployeeResponse(e))
	}
	return out, nil
}

// Get empleado de la firma del actor.
func (uc *EmployeeUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.EmployeeResponse, error) {
	if err := actor.require(access.EmployeesView); err != nil {
		return nil, err
	}
	e, err := uc.employees.GetByID(ctx, actor.FirmID, id)
	if err != nil {
		return nil, fmt.Errorf("employees: leer: %w", err)
	}
	if e == nil {
		return nil, domain.NotFound("empleado")
	}
	out := toEmployeeResponse(e)
	return &out, nil
}

// List paginado por matrícula.
func (uc *EmployeeUseCase) List(ctx context.Context, actor Actor, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	if err := actor.require(access.EmployeesView); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.employees.List(ctx, actor.FirmID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("employees: listar: %w", err)
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
