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

func (f *fixture) memberships() *usecase.MembershipUseCase {
	return usecase.NewMembershipUseCase(f.store.Users, f.store.Members, f.store)
}

func TestAddMember(t *testing.T) {
	f := newFixture(t)
	u := f.store.SeedUser("nueva@test", "Nueva", "")
	out, err := f.memberships().Add(context.Background(), f.actor(entity.RoleAdmin), dto.AddMemberRequest{Email: "NUEVA@test", Role: "staff"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.UserID)
	assert.Equal(t, "STAFF", out.Role)

	_, err = f.memberships().Add(context.Background(), f.actor(entity.RoleAdmin), dto.AddMemberRequest{Email: "nueva@test", Role: "VIEWER"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddMember_AdminNoOtorgaOwner(t *testing.T) {
	f := newFixture(t)
	f.store.SeedUser("nueva@test", "Nueva", "")
	_, err := f.memberships().Add(context.Background(), f.actor(entity.RoleAdmin), dto.AddMemberRequest{Email: "nueva@test", Role: "OWNER"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddMember_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.memberships().Add(context.Background(), f.actor(entity.RoleOwner), dto.AddMemberRequest{Email: "nadie@test", Role: "STAFF"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeRole_UltimoOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.actor(entity.RoleOwner)
	_, err := f.memberships().ChangeRole(context.Background(), owner, owner.UserID, dto.UpdateMemberRequest{Role: "ADMIN"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err := f.memberships().ChangeRole(context.Background(), owner, f.users[entity.RoleAdmin].ID, dto.UpdateMemberRequest{Role: "OWNER"})
	require.NoError(t, err)
	assert.Equal(t, "OWNER", out.Role)
	assert.Equal(t, "ADMIN@acme.test", out.Email)

	_, err = f.memberships().ChangeRole(context.Background(), owner, owner.UserID, dto.UpdateMemberRequest{Role: "ADMIN"})
	assert.NoError(t, err, "con otro OWNER ya se puede degradar")
}

func TestChangeRole_SoloOwner(t *testing.T) {
	f := newFixture(t)
	_, err := f.memberships().ChangeRole(context.Background(), f.actor(entity.RoleAdmin), f.users[entity.RoleStaff].ID, dto.UpdateMemberRequest{Role: "MANAGER"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	owner := f.actor(entity.RoleOwner)
	require.NoError(t, f.memberships().Remove(context.Background(), owner, f.users[entity.RoleStaff].ID))
	assert.ErrorIs(t, f.memberships().Remove(context.Background(), owner, f.users[entity.RoleStaff].ID), domain.ErrNotFound)
	assert.ErrorIs(t, f.memberships().Remove(context.Background(), owner, owner.UserID), domain.ErrConflict)
	assert.Equal(t, []string{entity.AuditMemberRemove}, f.actions())
}

func TestListMembers(t *testing.T) {
	f := newFixture(t)
	list, err := f.memberships().List(context.Background(), f.actor(entity.RoleViewer))
	require.NoError(t, err)
	assert.Len(t, list, len(entity.AllRoles()))
}
