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

func TestClientCRUD(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewClientUseCase(f.store.Clients)
	ctx := context.Background()
	staff := f.actor(entity.RoleStaff)

	c, err := uc.Create(ctx, staff, dto.CreateClientRequest{Name: "Globex", Email: "Compras@Globex.test"})
	require.NoError(t, err)
	assert.Equal(t, "compras@globex.test", c.Email)

	_, err = uc.Create(ctx, f.actor(entity.RoleViewer), dto.CreateClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := "no-es-email"
	_, err = uc.Update(ctx, staff, c.ID, dto.UpdateClientRequest{Email: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	phone := "+57 300"
	out, err := uc.Update(ctx, staff, c.ID, dto.UpdateClientRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "+57 300", out.Phone)
	assert.Equal(t, "Globex", out.Name)

	list, err := uc.List(ctx, f.actor(entity.RoleViewer), dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 100, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, staff, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, staff, c.ID), domain.ErrNotFound)
}

func TestDepartments(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewDepartmentUseCase(f.store.Departments)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.actor(entity.RoleManager), dto.CreateDepartmentRequest{Name: "Ventas"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.actor(entity.RoleManager), dto.CreateDepartmentRequest{Name: "Ventas"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Create(ctx, f.actor(entity.RoleStaff), dto.CreateDepartmentRequest{Name: "Compras"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, f.actor(entity.RoleViewer))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAuditList(t *testing.T) {
	f := newFixture(t)
	_, err := f.bindings().Install(context.Background(), f.actor(entity.RoleOwner), dto.InstallModuleRequest{ModuleID: "crm"})
	require.NoError(t, err)
	require.NoError(t, f.bindings().Uninstall(context.Background(), f.actor(entity.RoleOwner), "crm"))

	uc := usecase.NewAuditUseCase(f.store.Audit)
	out, err := uc.List(context.Background(), f.actor(entity.RoleAdmin), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, entity.AuditModuleUninstall, out.Items[0].Action, "más reciente primero")
	assert.Equal(t, "crm", out.Items[0].Metadata["slug"])

	_, err = uc.List(context.Background(), f.actor(entity.RoleManager), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
