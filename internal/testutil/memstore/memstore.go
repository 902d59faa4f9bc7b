// Package memstore implementa los puertos de repository en memoria para tests de casos de uso y HTTP.
// Respeta las restricciones de unicidad del esquema (devuelve domain.ErrConflict) y su TxRunner
// descarta los cambios cuando el callback falla.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

type state struct {
	holdings    map[string]*entity.Holding
	firms       map[string]*entity.Firm
	users       map[string]*entity.User
	members     map[string]*entity.UserFirm // userID|firmID
	modules     map[string]*entity.Module
	firmModules map[string]*entity.FirmModule // firmID|moduleID
	departments map[string]*entity.Department
	employees   map[string]*entity.Employee
	clients     map[string]*entity.Client
	contracts   []*entity.Contract
	transfers   []*entity.Transfer
	audit       []*entity.AuditLog
}

func newState() state {
	return state{
		holdings:    map[string]*entity.Holding{},
		firms:       map[string]*entity.Firm{},
		users:       map[string]*entity.User{},
		members:     map[string]*entity.UserFirm{},
		modules:     map[string]*entity.Module{},
		firmModules: map[string]*entity.FirmModule{},
		departments: map[string]*entity.Department{},
		employees:   map[string]*entity.Employee{},
		clients:     map[string]*entity.Client{},
	}
}

// Las entidades se guardan como copias y se reemplazan al actualizar, así que basta con clonar mapas y slices.
func (s state) clone() state {
	out := state{
		holdings:    cloneMap(s.holdings),
		firms:       cloneMap(s.firms),
		users:       cloneMap(s.users),
		members:     cloneMap(s.members),
		modules:     cloneMap(s.modules),
		firmModules: cloneMap(s.firmModules),
		departments: cloneMap(s.departments),
		employees:   cloneMap(s.employees),
		clients:     cloneMap(s.clients),
		contracts:   append([]*entity.Contract(nil), s.contracts...),
		transfers:   append([]*entity.Transfer(nil), s.transfers...),
		audit:       append([]*entity.AuditLog(nil), s.audit...),
	}
	return out
}

func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cp[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func key(a, b string) string { return a + "|" + b }

// Store base de datos en memoria.
type Store struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	st       state
	failures map[string]error

	Commits   int
	Rollbacks int

	Holdings    *HoldingRepo
	Firms       *FirmRepo
	Users       *UserRepo
	Members     *MemberRepo
	Modules     *ModuleRepo
	FirmModules *FirmModuleRepo
	Audit       *AuditRepo
	Departments *DepartmentRepo
	Employees   *EmployeeRepo
	Contracts   *ContractRepo
	Transfers   *TransferRepo
	Clients     *ClientRepo
}

// New crea un store vacío.
func New() *Store {
	s := &Store{st: newState(), failures: map[string]error{}}
	s.Holdings = &HoldingRepo{s}
	s.Firms = &FirmRepo{s}
	s.Users = &UserRepo{s}
	s.Members = &MemberRepo{s}
	s.Modules = &ModuleRepo{s}
	s.FirmModules = &FirmModuleRepo{s}
	s.Audit = &AuditRepo{s}
	s.Departments = &DepartmentRepo{s}
	s.Employees = &EmployeeRepo{s}
	s.Contracts = &ContractRepo{s}
	s.Transfers = &TransferRepo{s}
	s.Clients = &ClientRepo{s}
	return s
}

// Repos devuelve los repositorios como puertos.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Holdings:    s.Holdings,
		Firms:       s.Firms,
		Users:       s.Users,
		Members:     s.Members,
		Modules:     s.Modules,
		FirmModules: s.FirmModules,
		Audit:       s.Audit,
		Departments: s.Departments,
		Employees:   s.Employees,
		Contracts:   s.Contracts,
		Transfers:   s.Transfers,
		Clients:     s.Clients,
	}
}

// Fail hace que la operación indicada ("FirmModules.ListEnabledModules", "Audit.Create"...) devuelva err.
// err nil elimina el fallo.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) lock(op string) error {
	s.mu.Lock()
	if err, ok := s.failures[op]; ok {
		s.mu.Unlock()
		return err
	}
	return nil
}

// Run implementa repository.TxRunner: snapshot antes de fn y restauración si fn falla.
// Las transacciones se serializan con txMu para que un rollback no pise el commit de otra.
// No admite Run anidado.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.st.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.st = snap
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

var _ repository.TxRunner = (*Store)(nil)

// AuditLogs copia de los registros de auditoría en orden de inserción.
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.AuditLog, 0, len(s.st.audit))
	for _, a := range s.st.audit {
		out = append(out, *a)
	}
	return out
}

// EmployeeCount número de empleados de la firma.
func (s *Store) EmployeeCount(firmID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.st.employees {
		if e.FirmID == firmID {
			n++
		}
	}
	return n
}

// ── Holdings ────────────────────────────────────────────────────────────────

// HoldingRepo implementa repository.HoldingRepository.
type HoldingRepo struct{ s *Store }

var _ repository.HoldingRepository = (*HoldingRepo)(nil)

func (r *HoldingRepo) Create(_ context.Context, h *entity.Holding) error {
	if err := r.s.lock("Holdings.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.holdings[h.ID]; ok {
		return domain.Conflict("holding %s ya existe", h.ID)
	}
	r.s.st.holdings[h.ID] = cp(h)
	return nil
}

func (r *HoldingRepo) GetByID(_ context.Context, id string) (*entity.Holding, error) {
	if err := r.s.lock("Holdings.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return cp(r.s.st.holdings[id]), nil
}

func (r *HoldingRepo) List(_ context.Context) ([]*entity.Holding, error) {
	if err := r.s.lock("Holdings.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]*entity.Holding, 0, len(r.s.st.holdings))
	for _, h := range r.s.st.holdings {
		out = append(out, cp(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Firms ───────────────────────────────────────────────────────────────────

// FirmRepo implementa repository.FirmRepository.
type FirmRepo struct{ s *Store }

var _ repository.FirmRepository = (*FirmRepo)(nil)

func (r *FirmRepo) Create(_ context.Context, f *entity.Firm) error {
	if err := r.s.lock("Firms.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.firms {
		if x.Slug == f.Slug {
			return domain.Conflict("slug %q ya existe", f.Slug)
		}
	}
	r.s.st.firms[f.ID] = cp(f)
	return nil
}

func (r *FirmRepo) GetByID(_ context.Context, id string) (*entity.Firm, error) {
	if err := r.s.lock("Firms.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return cp(r.s.st.firms[id]), nil
}

func (r *FirmRepo) GetBySlug(_ context.Context, slug string) (*entity.Firm, error) {
	if err := r.s.lock("Firms.GetBySlug"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, f := range r.s.st.firms {
		if f.Slug == slug {
			return cp(f), nil
		}
	}
	return nil, nil
}

func (r *FirmRepo) Update(_ context.Context, f *entity.Firm) error {
	if err := r.s.lock("Firms.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.firms[f.ID]
	if !ok {
		return domain.NotFound("firma")
	}
	next := cp(f)
	next.Slug = cur.Slug
	r.s.st.firms[f.ID] = next
	return nil
}

func (r *FirmRepo) ListByHolding(_ context.Context, holdingID string) ([]*entity.Firm, error) {
	if err := r.s.lock("Firms.ListByHolding"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Firm
	for _, f := range r.s.st.firms {
		if f.HoldingID == holdingID {
			out = append(out, cp(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *FirmRepo) CountByHolding(ctx context.Context, holdingID string) (int, error) {
	list, err := r.ListByHolding(ctx, holdingID)
	return len(list), err
}

// ── Users ───────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	if err := r.s.lock("Users.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.Conflict("email %q ya registrado", u.Email)
		}
	}
	r.s.st.users[u.ID] = cp(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := r.s.lock("Users.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return cp(r.s.st.users[id]), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.s.lock("Users.GetByEmail"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			return cp(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	if err := r.s.lock("Users.UpdatePassword"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.NotFound("usuario")
	}
	next := cp(u)
	next.PasswordHash = hash
	next.UpdatedAt = at
	r.s.st.users[id] = next
	return nil
}

// ── Memberships ─────────────────────────────────────────────────────────────

// MemberRepo implementa repository.UserFirmRepository.
type MemberRepo struct{ s *Store }

var _ repository.UserFirmRepository = (*MemberRepo)(nil)

func (r *MemberRepo) Create(_ context.Context, uf *entity.UserFirm) error {
	if err := r.s.lock("Members.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	k := key(uf.UserID, uf.FirmID)
	if _, ok := r.s.st.members[k]; ok {
		return domain.Conflict("el usuario ya es miembro de la firma")
	}
	r.s.st.members[k] = cp(uf)
	return nil
}

func (r *MemberRepo) Get(_ context.Context, userID, firmID string) (*entity.UserFirm, error) {
	if err := r.s.lock("Members.Get"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return cp(r.s.st.members[key(userID, firmID)]), nil
}

func (r *MemberRepo) UpdateRole(_ context.Context, userID, firmID string, role entity.Role) error {
	if err := r.s.lock("Members.UpdateRole"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	k := key(userID, firmID)
	uf, ok := r.s.st.members[k]
	if !ok {
		return domain.NotFound("miembro")
	}
	next := cp(uf)
	next.Role = role
	next.UpdatedAt = time.Now()
	r.s.st.members[k] = next
	return nil
}

func (r *MemberRepo) Delete(_ context.Context, userID, firmID string) (bool, error) {
	if err := r.s.lock("Members.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	k := key(userID, firmID)
	if _, ok := r.s.st.members[k]; !ok {
		return false, nil
	}
	delete(r.s.st.members, k)
	return true, nil
}

func (r *MemberRepo) ListByUser(_ context.Context, userID string) ([]entity.Membership, error) {
	if err := r.s.lock("Members.ListByUser"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []entity.Membership
	for _, uf := range r.s.st.members {
		if uf.UserID != userID {
			continue
		}
		if f, ok := r.s.st.firms[uf.FirmID]; ok {
			out = append(out, entity.Membership{Firm: *f, Role: uf.Role})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Firm.Name < out[j].Firm.Name })
	return out, nil
}

func (r *MemberRepo) ListMembers(_ context.Context, firmID string) ([]entity.Member, error) {
	if err := r.s.lock("Members.ListMembers"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []entity.Member
	for _, uf := range r.s.st.members {
		if uf.FirmID != firmID {
			continue
		}
		m := entity.Member{UserFirm: *uf}
		if u, ok := r.s.st.users[uf.UserID]; ok {
			m.Email, m.Name = u.Email, u.Name
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *MemberRepo) CountByRole(_ context.Context, firmID string, role entity.Role) (int, error) {
	if err := r.s.lock("Members.CountByRole"); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	n := 0
	for _, uf := range r.s.st.members {
		if uf.FirmID == firmID && uf.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *MemberRepo) HasAnyRole(_ context.Context, userID string, roles []entity.Role) (bool, error) {
	if err := r.s.lock("Members.HasAnyRole"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	for _, uf := range r.s.st.members {
		if uf.UserID == userID && entity.ContainsRole(roles, uf.Role) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemberRepo) HasRoleInHolding(_ context.Context, userID, holdingID string, roles []entity.Role) (bool, error) {
	if err := r.s.lock("Members.HasRoleInHolding"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	for _, uf := range r.s.st.members {
		if uf.UserID != userID || !entity.ContainsRole(roles, uf.Role) {
			continue
		}
		if f, ok := r.s.st.firms[uf.FirmID]; ok && f.HoldingID == holdingID {
			return true, nil
		}
	}
	return false, nil
}

// ── Modules ─────────────────────────────────────────────────────────────────

// ModuleRepo implementa repository.ModuleRepository.
type ModuleRepo struct{ s *Store }

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

func (r *ModuleRepo) Create(_ context.Context, m *entity.Module) error {
	if err := r.s.lock("Modules.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.modules {
		if x.Slug == m.Slug {
			return domain.Conflict("módulo %q ya existe", m.Slug)
		}
	}
	r.s.st.modules[m.ID] = cp(m)
	return nil
}

func (r *ModuleRepo) GetByID(_ context.Context, id string) (*entity.Module, error) {
	if err := r.s.lock("Modules.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return cp(r.s.st.modules[id]), nil
}

func (r *ModuleRepo) GetBySlug(_ context.Context, slug string) (*entity.Module, error) {
	if err := r.s.lock("Modules.GetBySlug"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, m := range r.s.st.modules {
		if m.Slug == slug {
			return cp(m), nil
		}
	}
	return nil, nil
}

func (r *ModuleRepo) ListWithStats(_ context.Context) ([]*entity.ModuleWithStats, error) {
	if err := r.s.lock("Modules.ListWithStats"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]*entity.ModuleWithStats, 0, len(r.s.st.modules))
	for _, m := range r.s.st.modules {
		ms := &entity.ModuleWithStats{Module: *m}
		for _, fm := range r.s.st.firmModules {
			if fm.ModuleID == m.ID {
				ms.InstallCount++
				if fm.IsEnabled {
					ms.EnabledCount++
				}
			}
		}
		out = append(out, ms)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ModuleRepo) ListSystem(_ context.Context) ([]*entity.Module, error) {
	if err := r.s.lock("Modules.ListSystem"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Module
	for _, m := range r.s.st.modules {
		if m.IsSystem {
			out = append(out, cp(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Firm modules ────────────────────────────────────────────────────────────

// FirmModuleRepo implementa repository.FirmModuleRepository.
type FirmModuleRepo struct{ s *Store }

var _ repository.FirmModuleRepository = (*FirmModuleRepo)(nil)

func (r *FirmModuleRepo) withModule(fm *entity.FirmModule) *entity.FirmModule {
	out := cp(fm)
	out.Settings = append([]byte(nil), fm.Settings...)
	out.Module = cp(r.s.st.modules[fm.ModuleID])
	return out
}

func (r *FirmModuleRepo) Create(_ context.Context, fm *entity.FirmModule) error {
	if err := r.s.lock("FirmModules.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	k := key(fm.FirmID, fm.ModuleID)
	if _, ok := r.s.st.firmModules[k]; ok {
		return domain.Conflict("el módulo ya está instalado en la firma")
	}
	stored := cp(fm)
	stored.Module = nil
	stored.Settings = append([]byte(nil), fm.Settings...)
	r.s.st.firmModules[k] = stored
	return nil
}

func (r *FirmModuleRepo) Get(_ context.Context, firmID, moduleID string) (*entity.FirmModule, error) {
	if err := r.s.lock("FirmModules.Get"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	fm, ok := r.s.st.firmModules[key(firmID, moduleID)]
	if !ok {
		return nil, nil
	}
	return r.withModule(fm), nil
}

func (r *FirmModuleRepo) Update(_ context.Context, fm *entity.FirmModule) error {
	if err := r.s.lock("FirmModules.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	k := key(fm.FirmID, fm.ModuleID)
	if _, ok := r.s.st.firmModules[k]; !ok {
		return domain.NotFound("instalación")
	}
	stored := cp(fm)
	stored.Module = nil
	stored.Settings = append([]byte(nil), fm.Settings...)
	r.s.st.firmModules[k] = stored
	return nil
}

func (r *FirmModuleRepo) Delete(_ context.Context, firmID, moduleID string) (bool, error) {
	if err := r.s.lock("FirmModules.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	k := key(firmID, moduleID)
	if _, ok := r.s.st.firmModules[k]; !ok {
		return false, nil
	}
	delete(r.s.st.firmModules, k)
	return true, nil
}

func (r *FirmModuleRepo) ListByFirm(_ context.Context, firmID string) ([]*entity.FirmModule, error) {
	if err := r.s.lock("FirmModules.ListByFirm"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.FirmModule
	for _, fm := range r.s.st.firmModules {
		if fm.FirmID == firmID {
			out = append(out, r.withModule(fm))
		}
	}
	sort.Slice(out, func(i, j int) bool { return moduleName(out[i]) < moduleName(out[j]) })
	return out, nil
}

func moduleName(fm *entity.FirmModule) string {
	if fm.Module == nil {
		return ""
	}
	return fm.Module.Name
}

func (r *FirmModuleRepo) ListEnabledModules(_ context.Context, firmID string) ([]*entity.Module, error) {
	if err := r.s.lock("FirmModules.ListEnabledModules"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Module
	for _, fm := range r.s.st.firmModules {
		if fm.FirmID != firmID || !fm.IsEnabled {
			continue
		}
		if m, ok := r.s.st.modules[fm.ModuleID]; ok && m.IsActive {
			out = append(out, cp(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *FirmModuleRepo) HasActiveModule(_ context.Context, firmID, slug string) (bool, error) {
	if err := r.s.lock("FirmModules.HasActiveModule"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	for _, fm := range r.s.st.firmModules {
		if fm.FirmID != firmID || !fm.IsEnabled {
			continue
		}
		if m, ok := r.s.st.modules[fm.ModuleID]; ok && m.Slug == slug && m.IsActive {
			return true, nil
		}
	}
	return false, nil
}

// ── Audit ───────────────────────────────────────────────────────────────────

// AuditRepo implementa repository.AuditLogRepository.
type AuditRepo struct{ s *Store }

var _ repository.AuditLogRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Create(_ context.Context, a *entity.AuditLog) error {
	if err := r.s.lock("Audit.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.st.audit = append(r.s.st.audit, cp(a))
	return nil
}

func (r *AuditRepo) ListByFirm(_ context.Context, firmID string, limit, offset int) ([]*entity.AuditLog, int, error) {
	if err := r.s.lock("Audit.ListByFirm"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	var all []*entity.AuditLog
	for i := len(r.s.st.audit) - 1; i >= 0; i-- {
		a := r.s.st.audit[i]
		if a.FirmID != nil && *a.FirmID == firmID {
			all = append(all, cp(a))
		}
	}
	return page(all, limit, offset), len(all), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

// ── HR ──────────────────────────────────────────────────────────────────────

// DepartmentRepo implementa repository.DepartmentRepository.
type DepartmentRepo struct{ s *Store }

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

func (r *DepartmentRepo) Create(_ context.Context, d *entity.Department) error {
	if err := r.s.lock("Departments.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, x := range r.s.st.departments {
		if x.FirmID == d.FirmID && strings.EqualFold(x.Name, d.Name) {
			return domain.Conflict("departamento %q ya existe", d.Name)
		}
	}
	r.s.st.departments[d.ID] = cp(d)
	return nil
}

func (r *DepartmentRepo) GetByID(_ context.Context, firmID, id string) (*entity.Department, error) {
	if err := r.s.lock("Departments.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	d, ok := r.s.st.departments[id]
	if !ok || d.FirmID != firmID {
		return nil, nil
	}
	return cp(d), nil
}

func (r *DepartmentRepo) ListByFirm(_ context.Context, firmID string) ([]*entity.Department, error) {
	if err := r.s.lock("Departments.ListByFirm"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Department
	for _, d := range r.s.st.departments {
		if d.FirmID == firmID {
			out = append(out, cp(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// EmployeeRepo implementa repository.EmployeeRepository.
type EmployeeRepo struct{ s *Store }

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

func (r *EmployeeRepo) matriculeTaken(firmID, matricule, exceptID string) bool {
	for _, e := range r.s.st.employees {
		if e.FirmID == firmID && e.Matricule == matricule && e.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.CreateBatch(ctx, []*entity.Employee{e})
}

func (r *EmployeeRepo) CreateBatch(_ context.Context, list []*entity.Employee) error {
	if err := r.s.lock("Employees.CreateBatch"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	for _, e := range list {
		k := key(e.FirmID, e.Matricule)
		if seen[k] || r.matriculeTaken(e.FirmID, e.Matricule, "") {
			return domain.Conflict("matrícula %q duplicada", e.Matricule)
		}
		seen[k] = true
	}
	for _, e := range list {
		r.s.st.employees[e.ID] = cp(e)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, firmID, id string) (*entity.Employee, error) {
	if err := r.s.lock("Employees.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	e, ok := r.s.st.employees[id]
	if !ok || e.FirmID != firmID {
		return nil, nil
	}
	return cp(e), nil
}

func (r *EmployeeRepo) List(_ context.Context, firmID string, limit, offset int) ([]*entity.Employee, int, error) {
	if err := r.s.lock("Employees.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	var all []*entity.Employee
	for _, e := range r.s.st.employees {
		if e.FirmID == firmID {
			all = append(all, cp(e))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Matricule < all[j].Matricule })
	return page(all, limit, offset), len(all), nil
}

func (r *EmployeeRepo) ExistingMatricules(_ context.Context, firmID string, matricules []string) ([]string, error) {
	if err := r.s.lock("Employees.ExistingMatricules"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []string
	for _, m := range matricules {
		if r.matriculeTaken(firmID, m, "") {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	if err := r.s.lock("Employees.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.employees[e.ID]; !ok {
		return domain.NotFound("empleado")
	}
	if r.matriculeTaken(e.FirmID, e.Matricule, e.ID) {
		return domain.Conflict("matrícula %q duplicada", e.Matricule)
	}
	r.s.st.employees[e.ID] = cp(e)
	return nil
}

// ContractRepo implementa repository.ContractRepository.
type ContractRepo struct{ s *Store }

var _ repository.ContractRepository = (*ContractRepo)(nil)

func (r *ContractRepo) Create(_ context.Context, c *entity.Contract) error {
	if err := r.s.lock("Contracts.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.st.contracts = append(r.s.st.contracts, cp(c))
	return nil
}

func (r *ContractRepo) GetByID(_ context.Context, firmID, id string) (*entity.Contract, error) {
	if err := r.s.lock("Contracts.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.contracts {
		if c.ID == id && c.FirmID == firmID {
			return cp(c), nil
		}
	}
	return nil, nil
}

func (r *ContractRepo) ListByFirm(_ context.Context, firmID, employeeID string) ([]*entity.Contract, error) {
	if err := r.s.lock("Contracts.ListByFirm"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Contract
	for i := len(r.s.st.contracts) - 1; i >= 0; i-- {
		c := r.s.st.contracts[i]
		if c.FirmID == firmID && (employeeID == "" || c.EmployeeID == employeeID) {
			out = append(out, cp(c))
		}
	}
	return out, nil
}

func (r *ContractRepo) Update(_ context.Context, c *entity.Contract) error {
	if err := r.s.lock("Contracts.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for i, x := range r.s.st.contracts {
		if x.ID == c.ID {
			r.s.st.contracts[i] = cp(c)
			return nil
		}
	}
	return domain.NotFound("contrato")
}

func (r *ContractRepo) ListExpired(_ context.Context, before time.Time) ([]*entity.Contract, error) {
	if err := r.s.lock("Contracts.ListExpired"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Contract
	for _, c := range r.s.st.contracts {
		if c.Status == entity.ContractActive && c.EndDate != nil && c.EndDate.Before(before) {
			out = append(out, cp(c))
		}
	}
	return out, nil
}

// TransferRepo implementa repository.TransferRepository.
type TransferRepo struct{ s *Store }

var _ repository.TransferRepository = (*TransferRepo)(nil)

func (r *TransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	if err := r.s.lock("Transfers.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.st.transfers = append(r.s.st.transfers, cp(t))
	return nil
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	if err := r.s.lock("Transfers.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, t := range r.s.st.transfers {
		if t.ID == id {
			return cp(t), nil
		}
	}
	return nil, nil
}

func (r *TransferRepo) ListByFirm(_ context.Context, firmID string) ([]*entity.Transfer, error) {
	if err := r.s.lock("Transfers.ListByFirm"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []*entity.Transfer
	for i := len(r.s.st.transfers) - 1; i >= 0; i-- {
		t := r.s.st.transfers[i]
		if t.FromFirmID == firmID || t.ToFirmID == firmID {
			out = append(out, cp(t))
		}
	}
	return out, nil
}

func (r *TransferRepo) Update(_ context.Context, t *entity.Transfer) error {
	if err := r.s.lock("Transfers.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for i, x := range r.s.st.transfers {
		if x.ID == t.ID {
			r.s.st.transfers[i] = cp(t)
			return nil
		}
	}
	return domain.NotFound("traslado")
}

func (r *TransferRepo) HasPending(_ context.Context, employeeID string) (bool, error) {
	if err := r.s.lock("Transfers.HasPending"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	for _, t := range r.s.st.transfers {
		if t.EmployeeID == employeeID && t.Status == entity.TransferPending {
			return true, nil
		}
	}
	return false, nil
}

// ── CRM ─────────────────────────────────────────────────────────────────────

// ClientRepo implementa repository.ClientRepository.
type ClientRepo struct{ s *Store }

var _ repository.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	if err := r.s.lock("Clients.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.st.clients[c.ID] = cp(c)
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, firmID, id string) (*entity.Client, error) {
	if err := r.s.lock("Clients.GetByID"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	c, ok := r.s.st.clients[id]
	if !ok || c.FirmID != firmID {
		return nil, nil
	}
	return cp(c), nil
}

func (r *ClientRepo) List(_ context.Context, firmID string, limit, offset int) ([]*entity.Client, int, error) {
	if err := r.s.lock("Clients.List"); err != nil {
		return nil, 0, err
	}
	defer r.s.mu.Unlock()
	var all []*entity.Client
	for _, c := range r.s.st.clients {
		if c.FirmID == firmID {
			all = append(all, cp(c))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	if err := r.s.lock("Clients.Update"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.clients[c.ID]
	if !ok || cur.FirmID != c.FirmID {
		return domain.NotFound("cliente")
	}
	r.s.st.clients[c.ID] = cp(c)
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, firmID, id string) (bool, error) {
	if err := r.s.lock("Clients.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	c, ok := r.s.st.clients[id]
	if !ok || c.FirmID != firmID {
		return false, nil
	}
	delete(r.s.st.clients, id)
	return true, nil
}

// String resumen para depuración de tests.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("memstore{firms:%d users:%d members:%d modules:%d bindings:%d employees:%d audit:%d}",
		len(s.st.firms), len(s.st.users), len(s.st.members), len(s.st.modules),
		len(s.st.firmModules), len(s.st.employees), len(s.st.audit))
}
