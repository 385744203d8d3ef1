package audit

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// UseCase consulta de la bitácora.
type UseCase struct {
	repo repository.AuditRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AuditRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve entradas de la más reciente a la más antigua.
func (uc *UseCase) List(ctx context.Context, in dto.AuditFilterRequest) (*dto.AuditListResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	entries, err := uc.repo.List(ctx, repository.AuditFilter{
		UserID: in.UserID,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.AuditListResponse{
		Items: make([]dto.AuditEntryResponse, 0, len(entries)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(entries)},
	}
	for _, e := range entries {
		out.Items = append(out.Items, dto.AuditEntryResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			UserName:    e.UserName,
			Action:      e.Action,
			Description: e.Description,
			OccurredAt:  e.OccurredAt,
		})
	}
	return out, nil
}
