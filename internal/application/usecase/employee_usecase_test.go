package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

func (f *fixture) employees() *usecase.EmployeeUseCase {
	return usecase.NewEmployeeUseCase(f.store.Employees, f.store.Departments, f.store)
}

func row(matricule string) dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		Matricule: matricule, FirstName: "Ana", LastName: "Pérez",
		Salary: decimal.RequireFromString("1500.50"), HireDate: "2024-03-01",
	}
}

func TestImport_LoteValido(t *testing.T) {
	f := newFixture(t)
	out, err := f.employees().Import(context.Background(), f.actor(entity.RoleAdmin), dto.ImportEmployeesRequest{
		Employees: []dto.CreateEmployeeRequest{row("E-1"), row("E-2"), row("E-3")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Imported)
	assert.Equal(t, 3, f.store.EmployeeCount(f.firm.ID))
	assert.Equal(t, "2024-03-01", out.Employees[0].HireDate)
	assert.Equal(t, []string{entity.AuditEmployeeImport}, f.actions())
}

// Tres filas válidas y una con matrícula repetida: no se persiste ninguna.
func TestImport_DuplicadoEnElLoteRechazaTodo(t *testing.T) {
	f := newFixture(t)
	_, err := f.employees().Import(context.Background(), f.actor(entity.RoleAdmin), dto.ImportEmployeesRequest{
		Employees: []dto.CreateEmployeeRequest{row("E-1"), row("E-2"), row("E-3"), row("E-2")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "E-2")
	assert.Equal(t, 0, f.store.EmployeeCount(f.firm.ID))
	assert.Empty(t, f.store.AuditLogs())
}

func TestImport_DuplicadoContraLaFirmaRechazaTodo(t *testing.T) {
	f := newFixture(t)
	uc := f.employees()
	_, err := uc.Create(context.Background(), f.actor(entity.RoleManager), row("E-9"))
	require.NoError(t, err)

	_, err = uc.Import(context.Background(), f.actor(entity.RoleAdmin), dto.ImportEmployeesRequest{
		Employees: []dto.CreateEmployeeRequest{row("E-1"), row("E-2"), row("E-3"), row("E-9")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.store.EmployeeCount(f.firm.ID))
	assert.Equal(t, 1, f.store.Rollbacks)
}

// Si el almacén rechaza el lote (carrera con otra alta), la transacción se revierte entera.
func TestImport_ConflictoDelAlmacen(t *testing.T) {
	f := newFixture(t)
	f.store.Fail("Employees.CreateBatch", domain.Conflict("matrícula %q duplicada", "E-3"))
	_, err := f.employees().Import(context.Background(), f.actor(entity.RoleOwner), dto.ImportEmployeesRequest{
		Employees: []dto.CreateEmployeeRequest{row("E-1"), row("E-2"), row("E-3")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 0, f.store.EmployeeCount(f.firm.ID))
}

func TestImport_ValidacionPorFila(t *testing.T) {
	f := newFixture(t)
	bad := row("")
	bad.HireDate = "01/03/2024"
	_, err := f.employees().Import(context.Background(), f.actor(entity.RoleOwner), dto.ImportEmployeesRequest{
		Employees: []dto.CreateEmployeeRequest{row("E-1"), bad},
	})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "employees[1].matricule")
	assert.Contains(t, v.Fields, "employees[1].hireDate")
	assert.Equal(t, 0, f.store.EmployeeCount(f.firm.ID))
}

func TestImport_RolesYVacio(t *testing.T) {
	f := newFixture(t)
	uc := f.employees()
	_, err := uc.Import(context.Background(), f.actor(entity.RoleManager), dto.ImportEmployeesRequest{
		Employees: []dto.CreateEmployeeRequest{row("E-1")},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Import(context.Background(), f.actor(entity.RoleOwner), dto.ImportEmployeesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateEmployee_DepartamentoDeOtraFirma(t *testing.T) {
	f := newFixture(t)
	dep := "00000000-0000-0000-0000-000000000000"
	in := row("E-1")
	in.DepartmentID = &dep
	_, err := f.employees().Create(context.Background(), f.actor(entity.RoleOwner), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetYListEmployees(t *testing.T) {
	f := newFixture(t)
	uc := f.employees()
	created, err := uc.Create(context.Background(), f.actor(entity.RoleManager), row("E-1"))
	require.NoError(t, err)

	got, err := uc.Get(context.Background(), f.actor(entity.RoleViewer), created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(got.Salary))

	page, err := uc.List(context.Background(), f.actor(entity.RoleStaff), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.Total)
	assert.Equal(t, 20, page.Page.Limit)

	_, err = uc.Get(context.Background(), f.actor(entity.RoleViewer), "otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
