package usecase

import (
	"context"
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

// MembershipUseCase gestiona los miembros (UserFirm) de una firma.
// Una firma siempre conserva al menos un OWNER.
type MembershipUseCase struct {
	users   repository.UserRepository
	members repository.UserFirmRepository
	tx      repository.TxRunner
}

// NewMembershipUseCase construye el caso de uso.
func NewMembershipUseCase(users repository.UserRepository, members repository.UserFirmRepository, tx repository.TxRunner) *MembershipUseCase {
	return &MembershipUseCase{users: users, members: members, tx: tx}
}

// List miembros de la firma.
func (uc *MembershipUseCase) List(ctx context.Context, actor Actor) ([]dto.MemberResponse, error) {
	if err := actor.require(access.MembersView); err != nil {
		return nil, err
	}
	list, err := uc.members.ListMembers(ctx, actor.FirmID)
	if err != nil {
		return nil, fmt.Errorf("members: listar: %w", err)
	}
	out := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MemberResponse{
			UserID: m.UserID, Email: m.Email, Name: m.Name, Role: string(m.Role), JoinedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// Add vincula un usuario existente. Sólo un OWNER puede otorgar OWNER.
func (uc *MembershipUseCase) Add(ctx context.Context, actor Actor, in dto.AddMemberRequest) (*dto.MemberResponse, error) {
	if err := actor.require(access.MembersManage); err != nil {
		return nil, err
	}
	v := domain.NewValidationError()
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		v.Add("email", "requerido")
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		v.Add("role", "rol desconocido")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if role == entity.RoleOwner && actor.Role != entity.RoleOwner {
		return nil, domain.Deny(domain.ReasonForbidden, "sólo un OWNER puede otorgar OWNER")
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("members: buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}
	now := time.Now()
	uf := &entity.UserFirm{
		ID: uuid.New().String(), UserID: user.ID, FirmID: actor.FirmID, Role: role,
		CreatedAt: now, UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Members.Create(ctx, uf); err != nil {
			return err
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditMemberAdd, "user", user.ID, map[string]any{"role": role}))
	})
	if err != nil {
		return nil, err
	}
	return &dto.MemberResponse{UserID: user.ID, Email: user.Email, Name: user.Name, Role: string(role), JoinedAt: now}, nil
}

// ChangeRole cambia el rol de un miembro (sólo OWNER). Degradar al último OWNER es un conflicto.
func (uc *MembershipUseCase) ChangeRole(ctx context.Context, actor Actor, userID string, in dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	if err := actor.require(access.MembersChangeRole); err != nil {
		return nil, err
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.Invalid("role", "rol desconocido")
	}
	var out *dto.MemberResponse
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		current, err := repos.Members.Get(ctx, userID, actor.FirmID)
		if err != nil {
			return fmt.Errorf("members: leer: %w", err)
		}
		if current == nil {
			return domain.NotFound("miembro")
		}
		if current.Role == entity.RoleOwner && role != entity.RoleOwner {
			if err := ensureAnotherOwner(ctx, repos.Members, actor.FirmID); err != nil {
				return err
			}
		}
		if err := repos.Members.UpdateRole(ctx, userID, actor.FirmID, role); err != nil {
			return err
		}
		out = &dto.MemberResponse{UserID: userID, Role: string(role), JoinedAt: current.CreatedAt}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditMemberRole, "user", userID, map[string]any{
			"from": current.Role,
			"to":   role,
		}))
	})
	if err != nil {
		return nil, err
	}
	if u, err := uc.users.GetByID(ctx, userID); err == nil && u != nil {
		out.Email, out.Name = u.Email, u.Name
	}
	return out, nil
}

// Remove desvincula a un miembro (sólo OWNER). El último OWNER no se puede quitar.
func (uc *MembershipUseCase) Remove(ctx context.Context, actor Actor, userID string) error {
	if err := actor.require(access.MembersRemove); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		current, err := repos.Members.Get(ctx, userID, actor.FirmID)
		if err != nil {
			return fmt.Errorf("members: leer: %w", err)
		}
		if current == nil {
			return domain.NotFound("miembro")
		}
		if current.Role == entity.RoleOwner {
			if err := ensureAnotherOwner(ctx, repos.Members, actor.FirmID); err != nil {
				return err
			}
		}
		if _, err := repos.Members.Delete(ctx, userID, actor.FirmID); err != nil {
			return fmt.Errorf("members: eliminar: %w", err)
		}
		return writeAudit(ctx, repos.Audit, firmAudit(actor, entity.AuditMemberRemove, "user", userID, map[string]any{"role": current.Role}))
	})
}

func ensureAnotherOwner(ctx context.Context, members repository.UserFirmRepository, firmID string) error {
	owners, err := members.CountByRole(ctx, firmID, entity.RoleOwner)
	if err != nil {
		return fmt.Errorf("members: contar owners: %w", err)
	}
	if owners <= 1 {
		return domain.Conflict("la firma debe conservar al menos un OWNER")
	}
	return nil
}
