package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain/access"
	"github.com/jhoicas/Holding-api/internal/domain/repository"
)

// AuditUseCase lectura del registro de auditoría de una firma.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List más reciente primero.
func (uc *AuditUseCase) List(ctx context.Context, actor Actor, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	if err := actor.require(access.AuditView); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.repo.ListByFirm(ctx, actor.FirmID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("audit: listar: %w", err)
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAuditLogResponse(a))
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
