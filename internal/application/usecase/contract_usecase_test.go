package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/pkg/logger"
)

func (f *fixture) contracts() *usecase.ContractUseCase {
	return usecase.NewContractUseCase(f.store.Contracts, f.store.Employees, f.store, logger.Nop())
}

func (f *fixture) employee(t *testing.T, matricule string) *dto.EmployeeResponse {
	t.Helper()
	e, err := f.employees().Create(context.Background(), f.actor(entity.RoleOwner), row(matricule))
	require.NoError(t, err)
	return e
}

func strPtr(s string) *string { return &s }

func TestCreateContract(t *testing.T) {
	f := newFixture(t)
	e := f.employee(t, "E-1")
	out, err := f.contracts().Create(context.Background(), f.actor(entity.RoleManager), dto.CreateContractRequest{
		EmployeeID: e.ID, Type: "permanent", StartDate: "2024-01-01", Salary: decimal.NewFromInt(2000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ContractPermanent, out.Type)
	assert.Equal(t, entity.ContractActive, out.Status)
	assert.Nil(t, out.EndDate)
	assert.Equal(t, []string{entity.AuditContractCreate}, f.actions())
}

func TestCreateContract_Validacion(t *testing.T) {
	f := newFixture(t)
	e := f.employee(t, "E-1")
	uc := f.contracts()
	owner := f.actor(entity.RoleOwner)

	_, err := uc.Create(context.Background(), owner, dto.CreateContractRequest{EmployeeID: e.ID, Type: "FIXED_TERM", StartDate: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "FIXED_TERM sin fecha de fin")

	_, err = uc.Create(context.Background(), owner, dto.CreateContractRequest{
		EmployeeID: e.ID, Type: "FIXED_TERM", StartDate: "2024-06-01", EndDate: strPtr("2024-01-01"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), owner, dto.CreateContractRequest{EmployeeID: "nadie", Type: "PERMANENT", StartDate: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(context.Background(), f.actor(entity.RoleStaff), dto.CreateContractRequest{EmployeeID: e.ID, Type: "PERMANENT", StartDate: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTerminateContract(t *testing.T) {
	f := newFixture(t)
	e := f.employee(t, "E-1")
	uc := f.contracts()
	mgr := f.actor(entity.RoleManager)
	c, err := uc.Create(context.Background(), mgr, dto.CreateContractRequest{EmployeeID: e.ID, Type: "PERMANENT", StartDate: "2024-01-01"})
	require.NoError(t, err)

	_, err = uc.Terminate(context.Background(), mgr, c.ID, dto.TerminateContractRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Terminate(context.Background(), mgr, c.ID, dto.TerminateContractRequest{Reason: "renuncia"})
	require.NoError(t, err)
	assert.Equal(t, entity.ContractTerminated, out.Status)
	assert.NotNil(t, out.TerminatedAt)

	_, err = uc.Terminate(context.Background(), mgr, c.ID, dto.TerminateContractRequest{Reason: "otra vez"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, []string{entity.AuditContractCreate, entity.AuditContractEnd}, f.actions())
}

func TestExpireDue(t *testing.T) {
	f := newFixture(t)
	e1 := f.employee(t, "E-1")
	e2 := f.employee(t, "E-2")
	uc := f.contracts()
	owner := f.actor(entity.RoleOwner)
	_, err := uc.Create(context.Background(), owner, dto.CreateContractRequest{
		EmployeeID: e1.ID, Type: "FIXED_TERM", StartDate: "2024-01-01", EndDate: strPtr("2024-06-30"),
	})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), owner, dto.CreateContractRequest{
		EmployeeID: e2.ID, Type: "FIXED_TERM", StartDate: "2024-01-01", EndDate: strPtr("2030-06-30"),
	})
	require.NoError(t, err)

	n, err := uc.ExpireDue(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	logs := f.store.AuditLogs()
	last := logs[len(logs)-1]
	assert.Equal(t, entity.AuditContractEnd, last.Action)
	assert.Equal(t, usecase.SystemActorID, last.ActorID)

	n, err = uc.ExpireDue(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "los ya terminados no se vuelven a procesar")
}
