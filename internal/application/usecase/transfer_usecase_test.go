package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

func (f *fixture) transfers() *usecase.TransferUseCase {
	return usecase.NewTransferUseCase(f.store.Transfers, f.store.Employees, f.store.Firms, f.store.FirmModules, f.store)
}

// sibling crea una segunda firma del holding con RR.HH. activo y un MANAGER propio.
func (f *fixture) sibling(t *testing.T) (*entity.Firm, usecase.Actor) {
	t.Helper()
	beta := f.store.SeedFirm(f.firm.HoldingID, "beta", "Beta")
	f.store.SeedBinding(beta.ID, f.hr.ID, true)
	u := f.store.SeedUser("mgr@beta.test", "Mgr", "")
	f.store.SeedMember(u.ID, beta.ID, entity.RoleManager)
	return beta, usecase.Actor{UserID: u.ID, FirmID: beta.ID, Role: entity.RoleManager}
}

func TestTransfer_SolicitudYAprobacion(t *testing.T) {
	f := newFixture(t)
	beta, betaMgr := f.sibling(t)
	e := f.employee(t, "E-1")
	uc := f.transfers()

	tr, err := uc.Request(context.Background(), f.actor(entity.RoleManager), dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: beta.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferPending, tr.Status)

	_, err = uc.Request(context.Background(), f.actor(entity.RoleManager), dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: beta.ID})
	assert.ErrorIs(t, err, domain.ErrConflict, "un solo traslado pendiente por empleado")

	_, err = uc.Approve(context.Background(), f.actor(entity.RoleOwner), tr.ID, dto.DecideTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden, "la firma origen no decide")

	out, err := uc.Approve(context.Background(), betaMgr, tr.ID, dto.DecideTransferRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferApproved, out.Status)
	assert.Equal(t, 0, f.store.EmployeeCount(f.firm.ID))
	assert.Equal(t, 1, f.store.EmployeeCount(beta.ID))

	_, err = uc.Reject(context.Background(), betaMgr, tr.ID, dto.DecideTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransfer_Rechazo(t *testing.T) {
	f := newFixture(t)
	beta, betaMgr := f.sibling(t)
	e := f.employee(t, "E-1")
	uc := f.transfers()
	tr, err := uc.Request(context.Background(), f.actor(entity.RoleOwner), dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: beta.ID})
	require.NoError(t, err)

	out, err := uc.Reject(context.Background(), betaMgr, tr.ID, dto.DecideTransferRequest{Reason: "sin vacante"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferRejected, out.Status)
	assert.Equal(t, "sin vacante", out.Reason)
	assert.Equal(t, 1, f.store.EmployeeCount(f.firm.ID))

	actions := f.actions()
	assert.Equal(t, entity.AuditTransferReject, actions[len(actions)-1])
}

func TestTransfer_MatriculaOcupadaEnDestino(t *testing.T) {
	f := newFixture(t)
	beta, betaMgr := f.sibling(t)
	e := f.employee(t, "E-1")
	_, err := f.employees().Create(context.Background(), betaMgr, row("E-1"))
	require.NoError(t, err)

	uc := f.transfers()
	tr, err := uc.Request(context.Background(), f.actor(entity.RoleOwner), dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: beta.ID})
	require.NoError(t, err)
	_, err = uc.Approve(context.Background(), betaMgr, tr.ID, dto.DecideTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.store.EmployeeCount(f.firm.ID))

	list, err := uc.List(context.Background(), betaMgr)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransferPending, list[0].Status)
}

func TestTransfer_DestinoInvalido(t *testing.T) {
	f := newFixture(t)
	e := f.employee(t, "E-1")
	uc := f.transfers()
	mgr := f.actor(entity.RoleManager)

	_, err := uc.Request(context.Background(), mgr, dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: f.firm.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other := f.store.SeedHolding("Ajeno")
	foreign := f.store.SeedFirm(other.ID, "ajena", "Ajena")
	_, err = uc.Request(context.Background(), mgr, dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: foreign.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	noHR := f.store.SeedFirm(f.firm.HoldingID, "sin-hr", "Sin HR")
	_, err = uc.Request(context.Background(), mgr, dto.RequestTransferRequest{EmployeeID: e.ID, ToFirmID: noHR.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
