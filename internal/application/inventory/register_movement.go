package inventory

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement.
// callerID es el usuario del token; un user_id distinto en el body se rechaza con ErrForbidden.
func (uc *LedgerUseCase) RecordMovementFromRequest(ctx context.Context, callerID int64, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if in.UserID != 0 && in.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	mov, err := uc.RecordMovement(ctx, RecordMovementInput{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		UserID:      callerID,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Description: m.Description,
		UserID:      m.UserID,
		UserName:    m.UserName,
		OccurredAt:  m.OccurredAt,
	}
}
