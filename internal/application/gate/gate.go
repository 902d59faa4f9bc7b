// Package gate evalúa en cada petición protegida si un usuario puede operar sobre una firma
// y, opcionalmente, sobre un módulo instalado en ella.
//
// Orden de comprobaciones: sesión → firma → membresía → rol de la operación → módulo
// (instalado, habilitado y con el rol en su lista). La membresía se verifica antes de
// cualquier acceso a datos de la firma.
package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// FirmRef identifica la firma destino por ID o por slug.
type FirmRef struct {
	ID   string
	Slug string
}

// ParseFirmRef interpreta s como UUID (ID) o, si no lo es, como slug.
func ParseFirmRef(s string) FirmRef {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err == nil {
		return FirmRef{ID: s}
	}
	return FirmRef{Slug: strings.ToLower(s)}
}

// IsZero informa si la referencia está vacía.
func (r FirmRef) IsZero() bool { return r.ID == "" && r.Slug == "" }

// Request entrada del gate. Operation consulta la tabla de capacidades; RequiredRoles,
// si se indica, es una lista explícita adicional.
type Request struct {
	UserID        string
	Firm          FirmRef
	ModuleSlug    string
	Operation     access.Operation
	RequiredRoles []entity.Role
}

// Authorization resultado Authorized: firma resuelta y rol del usuario en ella.
type Authorization struct {
	UserID   string
	FirmID   string
	FirmSlug string
	Role     entity.Role
	Firm     *entity.Firm
	// Module y Binding sólo se rellenan si la petición apuntaba a un módulo.
	Module  *entity.Module
	Binding *entity.FirmModule
}

// DenialRecorder recibe cada denegación (métricas).
type DenialRecorder interface {
	RecordDenial(reason string)
}

// Option configura el Gate.
type Option func(*Gate)

// WithDenialRecorder registra las denegaciones en r.
func WithDenialRecorder(r DenialRecorder) Option {
	return func(g *Gate) { g.recorder = r }
}

// Gate autoriza peticiones. No tiene efectos secundarios salvo el DenialRecorder.
type Gate struct {
	firms    repository.FirmRepository
	members  repository.UserFirmRepository
	modules  repository.ModuleRepository
	bindings repository.FirmModuleRepository
	recorder DenialRecorder
}

// New construye el gate.
func New(
	firms repository.FirmRepository,
	members repository.UserFirmRepository,
	modules repository.ModuleRepository,
	bindings repository.FirmModuleRepository,
	opts ...Option,
) *Gate {
	g := &Gate{firms: firms, members: members, modules: modules, bindings: bindings}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize devuelve la autorización o un *domain.DeniedError. Los errores de infraestructura
// se devuelven envueltos y sin convertir en denegación.
func (g *Gate) Authorize(ctx context.Context, req Request) (*Authorization, error) {
	auth, err := g.authorize(ctx, req)
	if err != nil && g.recorder != nil {
		var denied *domain.DeniedError
		if errors.As(err, &denied) {
			g.recorder.RecordDenial(string(denied.Reason))
		}
	}
	return auth, err
}

func (g *Gate) authorize(ctx context.Context, req Request) (*Authorization, error) {
	if req.UserID == "" {
		return nil, domain.Deny(domain.ReasonUnauthenticated, "sesión requerida")
	}
	if req.Firm.IsZero() {
		return nil, domain.Invalid("firmId", "requerido")
	}

	firm, err := g.resolveFirm(ctx, req.Firm)
	if err != nil {
		return nil, fmt.Errorf("gate: resolver firma: %w", err)
	}
	// Firma inexistente y no-miembro responden lo mismo: no se revela qué firmas existen.
	if firm == nil {
		return nil, errNotMember()
	}

	membership, err := g.members.Get(ctx, req.UserID, firm.ID)
	if err != nil {
		return nil, fmt.Errorf("gate: membresía: %w", err)
	}
	if membership == nil {
		return nil, errNotMember()
	}
	role := membership.Role

	if len(req.RequiredRoles) > 0 && !entity.ContainsRole(req.RequiredRoles, role) {
		return nil, domain.Deny(domain.ReasonForbidden, "rol "+string(role)+" no permitido")
	}
	if req.Operation != "" && !access.Allowed(req.Operation, role) {
		return nil, domain.Deny(domain.ReasonForbidden, "rol "+string(role)+" no permitido para "+string(req.Operation))
	}

	auth := &Authorization{
		UserID:   req.UserID,
		FirmID:   firm.ID,
		FirmSlug: firm.Slug,
		Role:     role,
		Firm:     firm,
	}
	if req.ModuleSlug == "" {
		return auth, nil
	}

	module, err := g.modules.GetBySlug(ctx, req.ModuleSlug)
	if err != nil {
		return nil, fmt.Errorf("gate: módulo %s: %w", req.ModuleSlug, err)
	}
	if module == nil {
		return nil, domain.Deny(domain.ReasonModuleNotInstalled, "módulo "+req.ModuleSlug+" desconocido")
	}
	binding, err := g.bindings.Get(ctx, firm.ID, module.ID)
	if err != nil {
		return nil, fmt.Errorf("gate: instalación %s: %w", req.ModuleSlug, err)
	}
	if binding == nil {
		return nil, domain.Deny(domain.ReasonModuleNotInstalled, "módulo "+req.ModuleSlug+" no instalado")
	}
	if !binding.IsEnabled || !module.IsActive {
		return nil, domain.Deny(domain.ReasonModuleDisabled, "módulo "+req.ModuleSlug+" deshabilitado")
	}
	if !module.Permits(role) {
		return nil, domain.Deny(domain.ReasonForbidden, "rol "+string(role)+" no permitido en "+req.ModuleSlug)
	}
	auth.Module = module
	auth.Binding = binding
	return auth, nil
}

func errNotMember() error {
	return domain.Deny(domain.ReasonForbidden, "sin membresía en la firma")
}

func (g *Gate) resolveFirm(ctx context.Context, ref FirmRef) (*entity.Firm, error) {
	if ref.ID != "" {
		return g.firms.GetByID(ctx, ref.ID)
	}
	return g.firms.GetBySlug(ctx, ref.Slug)
}
