package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// AuditFilter filtro de la bitácora.
type AuditFilter struct {
	UserID int64
	Limit  int
	Offset int
}

// AuditRepository persiste y consulta la bitácora (solo inserción).
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditEntry, error)
}
