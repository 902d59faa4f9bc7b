package usecase

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
	"github.com/jhoicas/Holding-api/pkg/slug"
)

var themeColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// FirmUseCase alta y mantenimiento de firmas y holdings.
type FirmUseCase struct {
	holdings repository.HoldingRepository
	firms    repository.FirmRepository
	members  repository.UserFirmRepository
	tx       repository.TxRunner
	uploader Uploader
	logoOpts UploadOptions
}

// NewFirmUseCase construye el caso de uso. uploader puede ser nil (subida de logo deshabilitada).
func NewFirmUseCase(
	holdings repository.HoldingRepository,
	firms repository.FirmRepository,
	members repository.UserFirmRepository,
	tx repository.TxRunner,
	uploader Uploader,
	logoOpts UploadOptions,
) *FirmUseCase {
	return &FirmUseCase{holdings: holdings, firms: firms, members: members, tx: tx, uploader: uploader, logoOpts: logoOpts}
}

// ListHoldings devuelve todos los holdings.
func (uc *FirmUseCase) ListHoldings(ctx context.Context) ([]dto.HoldingResponse, error) {
	list, err := uc.holdings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("holding: listar: %w", err)
	}
	out := make([]dto.HoldingResponse, 0, len(list))
	for _, h := range list {
		out = append(out, toHoldingResponse(h))
	}
	return out, nil
}

// CreateHolding crea un holding. Si ya existe alguno, el llamador debe ser OWNER en alguna firma.
func (uc *FirmUseCase) CreateHolding(ctx context.Context, userID string, in dto.CreateHoldingRequest) (*dto.HoldingResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	existing, err := uc.holdings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("holding: listar: %w", err)
	}
	if len(existing) > 0 {
		ok, err := uc.members.HasAnyRole(ctx, userID, []entity.Role{entity.RoleOwner})
		if err != nil {
			return nil, fmt.Errorf("holding: verificar rol: %w", err)
		}
		if !ok {
			return nil, domain.Deny(domain.ReasonForbidden, "se requiere OWNER en alguna firma")
		}
	}
	now := time.Now()
	h := &entity.Holding{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.holdings.Create(ctx, h); err != nil {
		return nil, err
	}
	out := toHoldingResponse(h)
	return &out, nil
}

// Create crea una firma en un holding. El creador queda como OWNER y los módulos de sistema
// se instalan habilitados, todo en la misma transacción que el registro de auditoría.
// En un holding sin firmas cualquier usuario autenticado puede crear la primera; después se
// requiere ser OWNER en alguna firma del holding.
func (uc *FirmUseCase) Create(ctx context.Context, userID string, in dto.CreateFirmRequest) (*dto.FirmResponse, error) {
	v := domain.NewValidationError()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.Add("name", "requerido")
	}
	if in.HoldingID == "" {
		v.Add("holdingId", "requerido")
	} else if _, err := uuid.Parse(in.HoldingID); err != nil {
		v.Add("holdingId", "debe ser un UUID")
	}
	firmSlug := strings.TrimSpace(in.Slug)
	if firmSlug == "" {
		firmSlug = slug.Make(name)
	}
	if !slug.Valid(firmSlug) {
		v.Add("slug", "sólo minúsculas, dígitos y guiones")
	}
	if in.ThemeColor != "" && !themeColorRe.MatchString(in.ThemeColor) {
		v.Add("themeColor", "formato #RRGGBB")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	holding, err := uc.holdings.GetByID(ctx, in.HoldingID)
	if err != nil {
		return nil, fmt.Errorf("firm: buscar holding: %w", err)
	}
	if holding == nil {
		return nil, domain.NotFound("holding")
	}
	count, err := uc.firms.CountByHolding(ctx, holding.ID)
	if err != nil {
		return nil, fmt.Errorf("firm: contar firmas: %w", err)
	}
	if count > 0 {
		ok, err := uc.members.HasRoleInHolding(ctx, userID, holding.ID, []entity.Role{entity.RoleOwner})
		if err != nil {
			return nil, fmt.Errorf("firm: verificar rol: %w", err)
		}
		if !ok {
			return nil, domain.Deny(domain.ReasonForbidden, "se requiere OWNER en una firma del holding")
		}
	}

	now := time.Now()
	firm := &entity.Firm{
		ID:         uuid.New().String(),
		Slug:       firmSlug,
		Name:       name,
		ThemeColor: in.ThemeColor,
		HoldingID:  holding.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Firms.Create(ctx, firm); err != nil {
			return err
		}
		owner := &entity.UserFirm{
			ID: uuid.New().String(), UserID: userID, FirmID: firm.ID, Role: entity.RoleOwner,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := repos.Members.Create(ctx, owner); err != nil {
			return err
		}
		system, err := repos.Modules.ListSystem(ctx)
		if err != nil {
			return fmt.Errorf("firm: módulos de sistema: %w", err)
		}
		installed := make([]string, 0, len(system))
		for _, m := range system {
			fm := &entity.FirmModule{
				ID: uuid.New().String(), FirmID: firm.ID, ModuleID: m.ID, IsEnabled: true,
				Settings: []byte(`{}`), InstalledBy: userID, InstalledAt: now, UpdatedAt: now,
			}
			if err := repos.FirmModules.Create(ctx, fm); err != nil {
				return err
			}
			installed = append(installed, m.Slug)
		}
		actor := Actor{UserID: userID, FirmID: firm.ID, Role: entity.RoleOwner}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditFirmCreate, "firm", firm.ID, map[string]any{
			"slug":          firm.Slug,
			"holdingId":     firm.HoldingID,
			"systemModules": installed,
		}))
	})
	if err != nil {
		return nil, err
	}
	out := toFirmResponse(firm)
	return &out, nil
}

// ListMine firmas donde el usuario es miembro, con su rol.
func (uc *FirmUseCase) ListMine(ctx context.Context, userID string) ([]dto.MembershipResponse, error) {
	list, err := uc.members.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("firm: mis firmas: %w", err)
	}
	return toMembershipResponses(list), nil
}

func toMembershipResponses(list []entity.Membership) []dto.MembershipResponse {
	out := make([]dto.MembershipResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.MembershipResponse{Firm: toFirmResponse(&list[i].Firm), Role: string(list[i].Role)})
	}
	return out
}

// Get devuelve la firma del actor.
func (uc *FirmUseCase) Get(ctx context.Context, actor Actor) (*dto.FirmResponse, error) {
	if err := actor.require(access.FirmView); err != nil {
		return nil, err
	}
	firm, err := uc.firms.GetByID(ctx, actor.FirmID)
	if err != nil {
		return nil, fmt.Errorf("firm: leer: %w", err)
	}
	if firm == nil {
		return nil, domain.NotFound("firma")
	}
	out := toFirmResponse(firm)
	return &out, nil
}

// Update cambia nombre y color. El slug es inmutable: intentar cambiarlo es un error de validación.
func (uc *FirmUseCase) Update(ctx context.Context, actor Actor, in dto.UpdateFirmRequest) (*dto.FirmResponse, error) {
	if err := actor.require(access.FirmUpdate); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		v.Add("name", "no puede quedar vacío")
	}
	if in.ThemeColor != nil && *in.ThemeColor != "" && !themeColorRe.MatchString(*in.ThemeColor) {
		v.Add("themeColor", "formato #RRGGBB")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	var firm *entity.Firm
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		firm, err = repos.Firms.GetByID(ctx, actor.FirmID)
		if err != nil {
			return fmt.Errorf("firm: leer: %w", err)
		}
		if firm == nil {
			return domain.NotFound("firma")
		}
		if in.Slug != nil && *in.Slug != firm.Slug {
			return domain.Invalid("slug", "el slug no se puede modificar")
		}
		changes := map[string]any{}
		if in.Name != nil {
			firm.Name = strings.TrimSpace(*in.Name)
			changes["name"] = firm.Name
		}
		if in.ThemeColor != nil {
			firm.ThemeColor = *in.ThemeColor
			changes["themeColor"] = firm.ThemeColor
		}
		if len(changes) == 0 {
			return nil
		}
		firm.UpdatedAt = time.Now()
		if err := repos.Firms.Update(ctx, firm); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditFirmUpdate, "firm", firm.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	out := toFirmResponse(firm)
	return &out, nil
}

// UploadLogo publica el logo en el host externo y guarda su URL en la firma.
func (uc *FirmUseCase) UploadLogo(ctx context.Context, actor Actor, file UploadFile) (*dto.FirmResponse, error) {
	if err := actor.require(access.FirmUpdate); err != nil {
		return nil, err
	}
	if uc.uploader == nil {
		return nil, fmt.Errorf("firm: almacenamiento de archivos no configurado")
	}
	file.Key = path.Join("firms", actor.FirmID, "logo-"+uuid.New().String()+path.Ext(file.Name))
	url, err := uc.uploader.Upload(ctx, file, uc.logoOpts)
	if err != nil {
		return nil, err
	}

	var firm *entity.Firm
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		var err error
		firm, err = repos.Firms.GetByID(ctx, actor.FirmID)
		if err != nil {
			return fmt.Errorf("firm: leer: %w", err)
		}
		if firm == nil {
			return domain.NotFound("firma")
		}
		firm.Logo = url
		firm.UpdatedAt = time.Now()
		if err := repos.Firms.Update(ctx, firm); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditFirmLogo, "firm", firm.ID, map[string]any{"logo": url}))
	})
	if err != nil {
		return nil, err
	}
	out := toFirmResponse(firm)
	return &out, nil
}
