package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

func boolPtr(b bool) *bool { return &b }

func (f *fixture) bindings() *usecase.FirmModuleUseCase {
	return usecase.NewFirmModuleUseCase(f.store.FirmModules, f.store.Modules, f.store)
}

func TestInstall_LuegoListarDevuelveUnaInstalacion(t *testing.T) {
	f := newFixture(t)
	uc := f.bindings()
	ctx := context.Background()

	out, err := uc.Install(ctx, f.actor(entity.RoleAdmin), dto.InstallModuleRequest{
		ModuleID:  f.crm.ID,
		IsEnabled: boolPtr(false),
		Settings:  json.RawMessage(`{"pipeline":"b2b"}`),
	})
	require.NoError(t, err)
	assert.False(t, out.IsEnabled)
	assert.Equal(t, f.users[entity.RoleAdmin].ID, out.InstalledBy)

	list, err := uc.List(ctx, f.actor(entity.RoleViewer))
	require.NoError(t, err)
	var crm []dto.FirmModuleResponse
	for _, b := range list {
		if b.ModuleID == f.crm.ID {
			crm = append(crm, b)
		}
	}
	require.Len(t, crm, 1)
	assert.False(t, crm[0].IsEnabled)
	assert.JSONEq(t, `{"pipeline":"b2b"}`, string(crm[0].Settings))
	assert.Equal(t, []string{entity.AuditModuleInstall}, f.actions())
}

func TestInstall_PorSlugYSettingsPorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.bindings().Install(context.Background(), f.actor(entity.RoleOwner), dto.InstallModuleRequest{ModuleID: "crm"})
	require.NoError(t, err)
	assert.True(t, out.IsEnabled)
	assert.JSONEq(t, `{}`, string(out.Settings))
}

func TestInstall_DobleInstalacionEsConflictoSinCambiarEstado(t *testing.T) {
	f := newFixture(t)
	uc := f.bindings()
	ctx := context.Background()
	admin := f.actor(entity.RoleAdmin)

	_, err := uc.Install(ctx, admin, dto.InstallModuleRequest{ModuleID: f.crm.ID, Settings: json.RawMessage(`{"a":1}`)})
	require.NoError(t, err)
	before := f.store.String()

	_, err = uc.Install(ctx, admin, dto.InstallModuleRequest{ModuleID: f.crm.ID, IsEnabled: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, before, f.store.String())
	assert.Equal(t, 1, f.store.Rollbacks)
}

func TestInstall_ModuloInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.bindings().Install(context.Background(), f.actor(entity.RoleOwner), dto.InstallModuleRequest{ModuleID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInstall_ModuloInactivo(t *testing.T) {
	f := newFixture(t)
	f.store.SeedModule(entity.Module{Slug: "legacy", Name: "Legacy", IsActive: false})
	_, err := f.bindings().Install(context.Background(), f.actor(entity.RoleOwner), dto.InstallModuleRequest{ModuleID: "legacy"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInstall_SettingsDebeSerObjeto(t *testing.T) {
	f := newFixture(t)
	_, err := f.bindings().Install(context.Background(), f.actor(entity.RoleOwner), dto.InstallModuleRequest{
		ModuleID: f.crm.ID, Settings: json.RawMessage(`[1,2]`),
	})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "settings")
}

func TestMutaciones_RolesSinPermiso(t *testing.T) {
	f := newFixture(t)
	uc := f.bindings()
	ctx := context.Background()
	for _, r := range []entity.Role{entity.RoleManager, entity.RoleStaff, entity.RoleViewer} {
		_, err := uc.Install(ctx, f.actor(r), dto.InstallModuleRequest{ModuleID: f.crm.ID})
		assert.ErrorIs(t, err, domain.ErrForbidden, "install %s", r)
		_, err = uc.Update(ctx, f.actor(r), f.hr.ID, dto.UpdateFirmModuleRequest{IsEnabled: boolPtr(false)})
		assert.ErrorIs(t, err, domain.ErrForbidden, "update %s", r)
		err = uc.Uninstall(ctx, f.actor(r), f.hr.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden, "uninstall %s", r)
	}
	assert.Empty(t, f.store.AuditLogs())
}

func TestUpdate_ParcialConservaSettings(t *testing.T) {
	f := newFixture(t)
	uc := f.bindings()
	ctx := context.Background()
	owner := f.actor(entity.RoleOwner)

	_, err := uc.Install(ctx, owner, dto.InstallModuleRequest{ModuleID: f.crm.ID, Settings: json.RawMessage(`{"k":"v"}`)})
	require.NoError(t, err)

	out, err := uc.Update(ctx, owner, "crm", dto.UpdateFirmModuleRequest{IsEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, out.IsEnabled)
	assert.JSONEq(t, `{"k":"v"}`, string(out.Settings))

	out, err = uc.Update(ctx, owner, "crm", dto.UpdateFirmModuleRequest{Settings: json.RawMessage(`{"k":"w"}`)})
	require.NoError(t, err)
	assert.False(t, out.IsEnabled)
	assert.JSONEq(t, `{"k":"w"}`, string(out.Settings))
}

func TestUpdate_SinInstalacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.bindings().Update(context.Background(), f.actor(entity.RoleOwner), f.crm.ID, dto.UpdateFirmModuleRequest{IsEnabled: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUninstall_NoEsIdempotente(t *testing.T) {
	f := newFixture(t)
	uc := f.bindings()
	ctx := context.Background()
	owner := f.actor(entity.RoleOwner)

	_, err := uc.Install(ctx, owner, dto.InstallModuleRequest{ModuleID: f.crm.ID})
	require.NoError(t, err)
	require.NoError(t, uc.Uninstall(ctx, owner, f.crm.ID))

	err = uc.Uninstall(ctx, owner, f.crm.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{entity.AuditModuleInstall, entity.AuditModuleUninstall}, f.actions())
}

func TestUninstall_ModuloDeSistema(t *testing.T) {
	f := newFixture(t)
	err := f.bindings().Uninstall(context.Background(), f.actor(entity.RoleOwner), "hr")
	assert.ErrorIs(t, err, domain.ErrConflict)

	fm, err := f.store.FirmModules.Get(context.Background(), f.firm.ID, f.hr.ID)
	require.NoError(t, err)
	assert.NotNil(t, fm)
}

// Si la auditoría falla, la mutación principal tampoco queda.
func TestInstall_FalloDeAuditoriaRevierte(t *testing.T) {
	f := newFixture(t)
	f.store.Fail("Audit.Create", errors.New("disco lleno"))

	_, err := f.bindings().Install(context.Background(), f.actor(entity.RoleOwner), dto.InstallModuleRequest{ModuleID: f.crm.ID})
	require.Error(t, err)

	fm, err := f.store.FirmModules.Get(context.Background(), f.firm.ID, f.crm.ID)
	require.NoError(t, err)
	assert.Nil(t, fm)
	assert.Equal(t, 1, f.store.Rollbacks)
}
