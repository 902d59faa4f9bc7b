package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/domain/entity"
)

// Helpers de carga directa para tests. Entran por los repos, así que respetan la unicidad;
// un error aquí es un fallo del propio test y provoca panic.

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// SeedUser crea un usuario con el hash indicado (puede ser vacío).
func (s *Store) SeedUser(email, name, passwordHash string) *entity.User {
	now := time.Now()
	u := &entity.User{ID: uuid.NewString(), Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	must(s.Users.Create(context.Background(), u))
	return u
}

// SeedHolding crea un holding.
func (s *Store) SeedHolding(name string) *entity.Holding {
	now := time.Now()
	h := &entity.Holding{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	must(s.Holdings.Create(context.Background(), h))
	return h
}

// SeedFirm crea una firma en el holding.
func (s *Store) SeedFirm(holdingID, slug, name string) *entity.Firm {
	now := time.Now()
	f := &entity.Firm{ID: uuid.NewString(), Slug: slug, Name: name, HoldingID: holdingID, CreatedAt: now, UpdatedAt: now}
	must(s.Firms.Create(context.Background(), f))
	return f
}

// SeedMember vincula usuario y firma con un rol.
func (s *Store) SeedMember(userID, firmID string, role entity.Role) *entity.UserFirm {
	now := time.Now()
	uf := &entity.UserFirm{ID: uuid.NewString(), UserID: userID, FirmID: firmID, Role: role, CreatedAt: now, UpdatedAt: now}
	must(s.Members.Create(context.Background(), uf))
	return uf
}

// SeedModule registra un módulo; completa ID y fechas si faltan.
func (s *Store) SeedModule(m entity.Module) *entity.Module {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Version == "" {
		m.Version = "1.0.0"
	}
	if m.BasePath == "" {
		m.BasePath = "/" + m.Slug
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	must(s.Modules.Create(context.Background(), &m))
	return &m
}

// SeedBinding instala un módulo en una firma.
func (s *Store) SeedBinding(firmID, moduleID string, enabled bool) *entity.FirmModule {
	now := time.Now()
	fm := &entity.FirmModule{
		ID: uuid.NewString(), FirmID: firmID, ModuleID: moduleID, IsEnabled: enabled,
		Settings: []byte(`{}`), InstalledAt: now, UpdatedAt: now,
	}
	must(s.FirmModules.Create(context.Background(), fm))
	return fm
}
