package usecase_test

import (
	"testing"

	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/testutil/memstore"
)

// fixture: holding "Grupo" con la firma acme, un usuario por rol, HR (sistema) y CRM instalables.
type fixture struct {
	store *memstore.Store
	firm  *entity.Firm
	hr    *entity.Module
	crm   *entity.Module
	users map[entity.Role]*entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	h := s.SeedHolding("Grupo")
	f := &fixture{store: s, users: map[entity.Role]*entity.User{}}
	f.firm = s.SeedFirm(h.ID, "acme", "Acme")
	f.hr = s.SeedModule(entity.Module{
		Slug: entity.ModuleHR, Name: "Recursos Humanos", IsSystem: true, IsActive: true,
		PermittedRoles: []entity.Role{entity.RoleOwner, entity.RoleAdmin, entity.RoleManager},
	})
	f.crm = s.SeedModule(entity.Module{Slug: entity.ModuleCRM, Name: "CRM", IsActive: true})
	s.SeedBinding(f.firm.ID, f.hr.ID, true)
	for _, r := range entity.AllRoles() {
		u := s.SeedUser(string(r)+"@acme.test", string(r), "")
		s.SeedMember(u.ID, f.firm.ID, r)
		f.users[r] = u
	}
	return f
}

func (f *fixture) actor(r entity.Role) usecase.Actor {
	return usecase.Actor{UserID: f.users[r].ID, FirmID: f.firm.ID, Role: r}
}

func (f *fixture) actions() []string {
	var out []string
	for _, a := range f.store.AuditLogs() {
		out = append(out, a.Action)
	}
	return out
}
