package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// MovementFilter opciones de filtrado de movimientos, combinadas con AND.
// From es inclusivo y Until exclusivo.
type MovementFilter struct {
	From      *time.Time
	Until     *time.Time
	UserID    int64
	ProductID int64
	Type      string
}

// MovementCursor posición de paginación por llave (occurred_at, id), orden descendente.
type MovementCursor struct {
	OccurredAt time.Time
	ID         int64
}

// MovementRepository define el puerto de persistencia para movimientos de inventario.
type MovementRepository interface {
	// Create inserta el movimiento y completa ID y OccurredAt.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// List devuelve hasta limit movimientos más recientes que after (o desde el inicio si after es nil).
	List(ctx context.Context, filter MovementFilter, after *MovementCursor, limit int) ([]*entity.Movement, error)
	Delete(ctx context.Context, id int64) error
}
