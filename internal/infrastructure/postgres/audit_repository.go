package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora sobre la tabla audit_log (solo inserción).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta la entrada y completa ID y OccurredAt.
func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO audit_log (user_id, action, description) VALUES ($1, $2, $3) RETURNING id, occurred_at`,
		nullableID(e.UserID), e.Action, e.Description,
	).Scan(&e.ID, &e.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List devuelve entradas de la más reciente a la más antigua.
func (r *AuditRepo) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditEntry, error) {
	query := `
		SELECT a.id, COALESCE(a.user_id, 0), COALESCE(u.name, ''), a.action, a.description, a.occurred_at
		FROM audit_log a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ($1::bigint = 0 OR a.user_id = $1)
		ORDER BY a.occurred_at DESC, a.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.UserID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Description, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
