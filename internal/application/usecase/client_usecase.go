package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/entity"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// ClientUseCase clientes del módulo CRM.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

func validateClient(v *domain.ValidationError, c *entity.Client) {
	if c.Name == "" {
		v.Add("name", "requerido")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			v.Add("email", "email inválido")
		}
	}
}

// Create alta de cliente.
func (uc *ClientUseCase) Create(ctx context.Context, actor Actor, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := actor.require(access.ClientsManage); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		FirmID:    actor.FirmID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Company:   strings.TrimSpace(in.Company),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v := domain.NewValidationError()
	validateClient(v, c)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toClientResponse(c)
	return &out, nil
}

// List paginado por nombre.
func (uc *ClientUseCase) List(ctx context.Context, actor Actor, page dto.PageRequest) (*dto.ClientListResponse, error) {
	if err := actor.require(access.ClientsView); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, actor.FirmID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("clients: listar: %w", err)
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update parcial.
func (uc *ClientUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := actor.require(access.ClientsManage); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, actor.FirmID, id)
	if err != nil {
		return nil, fmt.Errorf("clients: leer: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound("cliente")
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Company != nil {
		c.Company = strings.TrimSpace(*in.Company)
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	v := domain.NewValidationError()
	validateClient(v, c)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("clients: actualizar: %w", err)
	}
	out := toClientResponse(c)
	return &out, nil
}

// Delete elimina el cliente; 404 si no existe.
func (uc *ClientUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.require(access.ClientsManage); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, actor.FirmID, id)
	if err != nil {
		return fmt.Errorf("clients: eliminar: %w", err)
	}
	if !ok {
		return domain.NotFound("cliente")
	}
	return nil
}
