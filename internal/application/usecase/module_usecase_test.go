package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

func (f *fixture) registry() *usecase.ModuleService {
	return usecase.NewModuleService(f.store.Modules, f.store.Members)
}

func TestRegister_Alta(t *testing.T) {
	f := newFixture(t)
	out, err := f.registry().Register(context.Background(), f.users[entity.RoleAdmin].ID, dto.RegisterModuleRequest{
		Slug:     "inventario",
		Name:     "Inventario",
		BasePath: "/inventario",
		Routes:   []dto.ModuleRouteDTO{{Path: "/stock", Name: "Stock", RequiredRoles: []string{"manager"}}},
	})
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.False(t, out.IsSystem)
	assert.Equal(t, "1.0.0", out.Version)
	assert.Len(t, out.PermittedRoles, len(entity.AllRoles()))
	assert.Equal(t, []string{"MANAGER"}, out.Routes[0].RequiredRoles)
}

func TestRegister_SlugDuplicado(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry().Register(context.Background(), f.users[entity.RoleOwner].ID, dto.RegisterModuleRequest{
		Slug: "crm", Name: "Otro CRM", BasePath: "/crm2",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_SlugInvalido(t *testing.T) {
	f := newFixture(t)
	for _, s := range []string{"Ventas", "ventas_2", "-ventas", ""} {
		_, err := f.registry().Register(context.Background(), f.users[entity.RoleOwner].ID, dto.RegisterModuleRequest{
			Slug: s, Name: "Ventas", BasePath: "/ventas",
		})
		var v *domain.ValidationError
		require.True(t, errors.As(err, &v), "slug %q", s)
		assert.Contains(t, v.Fields, "slug")
	}
}

func TestRegister_SinRolAdministrativo(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry().Register(context.Background(), f.users[entity.RoleManager].ID, dto.RegisterModuleRequest{
		Slug: "Slug Invalido",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "la autorización va antes que la validación")
}

func TestList_OrdenadoConContadores(t *testing.T) {
	f := newFixture(t)
	list, err := f.registry().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CRM", list[0].Name)
	assert.Equal(t, "Recursos Humanos", list[1].Name)
	require.NotNil(t, list[1].InstallCount)
	assert.Equal(t, 1, *list[1].InstallCount)
	assert.Equal(t, 1, *list[1].EnabledCount)
	assert.Equal(t, 0, *list[0].InstallCount)
}
