package inventory

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el registro del movimiento y el ajuste de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// AuditRecorder registra acciones en la bitácora. Best-effort: nunca devuelve error.
type AuditRecorder interface {
	Record(ctx context.Context, userID int64, action, description string)
}

// LedgerMetrics contadores del libro de movimientos.
type LedgerMetrics interface {
	MovementRecorded(kind string)
}

type noopMetrics struct{}

func (noopMetrics) MovementRecorded(string) {}
