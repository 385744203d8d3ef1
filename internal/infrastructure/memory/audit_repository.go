package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora en memoria. Store.FailAudit simula fallas de escritura.
type AuditRepo struct {
	s *Store
}

// NewAuditRepository construye el repositorio sobre store.
func NewAuditRepository(s *Store) *AuditRepo {
	return &AuditRepo{s: s}
}

func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.auditErr != nil {
		return r.s.auditErr
	}
	e.ID = r.s.newID()
	e.OccurredAt = r.s.Now()
	r.s.audit = append(r.s.audit, *e)
	return nil
}

func (r *AuditRepo) List(_ context.Context, filter repository.AuditFilter) ([]*entity.AuditEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.AuditEntry
	for _, e := range r.s.audit {
		if filter.UserID > 0 && e.UserID != filter.UserID {
			continue
		}
		if u, ok := r.s.users[e.UserID]; ok {
			e.UserName = u.Name
		}
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if filter.Offset >= len(list) {
		return nil, nil
	}
	list = list[filter.Offset:]
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}
