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

// DepartmentUseCase departamentos del módulo de RR.HH.
type DepartmentUseCase struct {
	repo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

// Create nombre único dentro de la firma (409).
func (uc *DepartmentUseCase) Create(ctx context.Context, actor Actor, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := actor.require(access.DepartmentsManage); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	now := time.Now()
	d := &entity.Department{
		ID:          uuid.New().String(),
		FirmID:      actor.FirmID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	out := toDepartmentResponse(d)
	return &out, nil
}

// List departamentos de la firma por nombre.
func (uc *DepartmentUseCase) List(ctx context.Context, actor Actor) ([]dto.DepartmentResponse, error) {
	if err := actor.require(access.DepartmentsView); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByFirm(ctx, actor.FirmID)
	if err != nil {
		return nil, fmt.Errorf("departments: listar: %w", err)
	}
	out := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDepartmentResponse(d))
	}
	return out, nil
}
