package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// FirmModuleUseCase ciclo de vida de la instalación de módulos en una firma:
// Desinstalado → Instalado(habilitado) ⇄ Instalado(deshabilitado) → Desinstalado.
type FirmModuleUseCase struct {
	bindings repository.FirmModuleRepository
	modules  repository.ModuleRepository
	tx       repository.TxRunner
}

// NewFirmModuleUseCase construye el caso de uso.
func NewFirmModuleUseCase(bindings repository.FirmModuleRepository, modules repository.ModuleRepository, tx repository.TxRunner) *FirmModuleUseCase {
	return &FirmModuleUseCase{bindings: bindings, modules: modules, tx: tx}
}

// List instalaciones de la firma con su módulo.
func (uc *FirmModuleUseCase) List(ctx context.Context, actor Actor) ([]dto.FirmModuleResponse, error) {
	if err := actor.require(access.ModulesView); err != nil {
		return nil, err
	}
	list, err := uc.bindings.ListByFirm(ctx, actor.FirmID)
	if err != nil {
		return nil, fmt.Errorf("firm modules: listar: %w", err)
	}
	out := make([]dto.FirmModuleResponse, 0, len(list))
	for _, fm := range list {
		out = append(out, toFirmModuleResponse(fm))
	}
	return out, nil
}

// Install crea la instalación en estado Instalado(isEnabled, por defecto true).
// Errores: Forbidden (rol), ErrInvalidInput, ErrNotFound (módulo), ErrConflict (ya instalado).
func (uc *FirmModuleUseCase) Install(ctx context.Context, actor Actor, in dto.InstallModuleRequest) (*dto.FirmModuleResponse, error) {
	if err := actor.require(access.ModulesManage); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	ref := strings.TrimSpace(in.ModuleID)
	if ref == "" {
		v.Add("moduleId", "requerido")
	}
	settings, present := normalizeSettings(v, in.Settings)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if !present {
		settings = json.RawMessage(`{}`)
	}

	module, err := resolveModule(ctx, uc.modules, ref)
	if err != nil {
		return nil, fmt.Errorf("firm modules: buscar módulo: %w", err)
	}
	if module == nil {
		return nil, domain.NotFound("módulo")
	}
	if !module.IsActive {
		return nil, domain.Invalid("moduleId", "el módulo está inactivo en el catálogo")
	}

	now := time.Now()
	fm := &entity.FirmModule{
		ID:          uuid.New().String(),
		FirmID:      actor.FirmID,
		ModuleID:    module.ID,
		IsEnabled:   in.IsEnabled == nil || *in.IsEnabled,
		Settings:    settings,
		InstalledBy: actor.UserID,
		InstalledAt: now,
		UpdatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		// La unicidad (firm, module) la garantiza el almacén: una doble instalación
		// concurrente termina en ErrConflict para la segunda.
		if err := repos.FirmModules.Create(ctx, fm); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditModuleInstall, "module", module.ID, map[string]any{
			"slug":      module.Slug,
			"isEnabled": fm.IsEnabled,
		}))
	})
	if err != nil {
		return nil, err
	}
	fm.Module = module
	out := toFirmModuleResponse(fm)
	return &out, nil
}

// Update aplica un cambio parcial: sólo se modifican los campos presentes. Habilitar o
// deshabilitar nunca toca settings.
func (uc *FirmModuleUseCase) Update(ctx context.Context, actor Actor, moduleRef string, in dto.UpdateFirmModuleRequest) (*dto.FirmModuleResponse, error) {
	if err := actor.require(access.ModulesManage); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	settings, hasSettings := normalizeSettings(v, in.Settings)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	module, err := resolveModule(ctx, uc.modules, moduleRef)
	if err != nil {
		return nil, fmt.Errorf("firm modules: buscar módulo: %w", err)
	}
	if module == nil {
		return nil, domain.NotFound("módulo")
	}

	var updated *entity.FirmModule
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		fm, err := repos.FirmModules.Get(ctx, actor.FirmID, module.ID)
		if err != nil {
			return fmt.Errorf("firm modules: leer instalación: %w", err)
		}
		if fm == nil {
			return domain.NotFound("instalación del módulo")
		}
		if in.IsEnabled == nil && !hasSettings {
			updated = fm
			return nil
		}
		changes := map[string]any{"slug": module.Slug}
		if in.IsEnabled != nil {
			fm.IsEnabled = *in.IsEnabled
			changes["isEnabled"] = fm.IsEnabled
		}
		if hasSettings {
			fm.Settings = settings
			changes["settings"] = true
		}
		fm.UpdatedAt = time.Now()
		if err := repos.FirmModules.Update(ctx, fm); err != nil {
			return err
		}
		updated = fm
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditModuleUpdate, "module", module.ID, changes))
	})
	if err != nil {
		return nil, err
	}
	updated.Module = module
	out := toFirmModuleResponse(updated)
	return &out, nil
}

// Uninstall elimina la instalación y sus settings. No es idempotente: desinstalar algo
// no instalado devuelve ErrNotFound. Los módulos de sistema no se desinstalan (sólo se deshabilitan).
func (uc *FirmModuleUseCase) Uninstall(ctx context.Context, actor Actor, moduleRef string) error {
	if err := actor.require(access.ModulesManage); err != nil {
		return err
	}
	module, err := resolveModule(ctx, uc.modules, moduleRef)
	if err != nil {
		return fmt.Errorf("firm modules: buscar módulo: %w", err)
	}
	if module == nil {
		return domain.NotFound("módulo")
	}
	return uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		fm, err := repos.FirmModules.Get(ctx, actor.FirmID, module.ID)
		if err != nil {
			return fmt.Errorf("firm modules: leer instalación: %w", err)
		}
		if fm == nil {
			return domain.NotFound("instalación del módulo")
		}
		if module.IsSystem {
			return domain.Conflict("el módulo de sistema %q no se puede desinstalar; deshabilítelo", module.Slug)
		}
		deleted, err := repos.FirmModules.Delete(ctx, actor.FirmID, module.ID)
		if err != nil {
			return fmt.Errorf("firm modules: desinstalar: %w", err)
		}
		if !deleted {
			return domain.NotFound("instalación del módulo")
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditModuleUninstall, "module", module.ID, map[string]any{
			"slug": module.Slug,
		}))
	})
}

// normalizeSettings valida que settings sea un objeto JSON. present=false si no vino o vino null.
func normalizeSettings(v *domain.ValidationError, raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		v.Add("settings", "debe ser un objeto JSON")
		return nil, false
	}
	out := make(json.RawMessage, len(trimmed))
	copy(out, trimmed)
	return out, true
}
