package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// DefaultPageSize filas por consulta al recorrer el historial.
const DefaultPageSize = 200

// LedgerConfig política del libro de movimientos; fija durante la vida del proceso.
type LedgerConfig struct {
	// AllowNegativeStock permite que una salida deje el stock bajo cero.
	AllowNegativeStock bool
	PageSize           int
}

// LedgerUseCase registra, lista y elimina movimientos de inventario.
// El alta de un movimiento y el ajuste de stock ocurren en una sola transacción con
// bloqueo de fila del producto (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	audit    AuditRecorder
	metrics  LedgerMetrics
	cfg      LedgerConfig
}

// NewLedgerUseCase construye el caso de uso. metrics puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	audit AuditRecorder,
	metrics LedgerMetrics,
	cfg LedgerConfig,
) *LedgerUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		audit:    audit,
		metrics:  metrics,
		cfg:      cfg,
	}
}

// RecordMovementInput entrada para registrar un movimiento.
type RecordMovementInput struct {
	ProductID   int64  `json:"product_id" validate:"gt=0"`
	Type        string `json:"type" validate:"required,oneof=entrada salida"`
	Quantity    int    `json:"quantity" validate:"gt=0,lte=2147483647"`
	Description string `json:"description" validate:"max=500"`
	UserID      int64  `json:"user_id" validate:"gte=0"`
}

// RecordMovement valida la entrada, bloquea el producto, inserta el movimiento y ajusta el stock
// en una transacción. Tras el commit registra la bitácora si hay usuario.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*entity.Movement, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		UserID:      in.UserID,
	}
	var productName string

	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		next := product.Stock + mov.Delta()
		if next > entity.MaxStock || next < -entity.MaxStock {
			return validation.Field("quantity", "lte")
		}
		if !uc.cfg.AllowNegativeStock && next < 0 {
			return domain.ErrInsufficientStock
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if _, err := productRepo.AdjustStock(ctx, product.ID, mov.Delta()); err != nil {
			return err
		}
		productName = product.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	mov.ProductName = productName

	uc.metrics.MovementRecorded(mov.Type)
	uc.audit.Record(ctx, in.UserID, entity.AuditActionRecordMovement,
		fmt.Sprintf("%s de %d unidades de %s", mov.Type, mov.Quantity, productName))
	return mov, nil
}

// GetMovement devuelve un movimiento por ID o ErrNotFound.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id int64) (*entity.Movement, error) {
	if id <= 0 {
		return nil, validation.Field("id", "gt")
	}
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// DeleteMovement elimina solo el registro del movimiento; el stock del producto no se revierte.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, id, userID int64) error {
	mov, err := uc.GetMovement(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.movRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDeleteMovement,
		fmt.Sprintf("movimiento %d (%s de %d unidades)", mov.ID, mov.Type, mov.Quantity))
	return nil
}
