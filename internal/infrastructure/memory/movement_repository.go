package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos en memoria.
type MovementRepo struct {
	s    *Store
	inTx bool
}

// NewMovementRepository construye el repositorio sobre store.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	defer r.s.lockTables(r.inTx)()
	// Mismas restricciones que la tabla: tipo conocido, cantidad positiva y producto existente.
	if !entity.ValidMovementType(m.Type) || m.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrInvalidInput
	}
	m.ID = r.s.newID()
	m.OccurredAt = r.s.Now()
	r.s.movements[m.ID] = *m
	return nil
}

// withNames completa los nombres de producto y usuario. Requiere mu tomado.
func (r *MovementRepo) withNames(m entity.Movement) *entity.Movement {
	if p, ok := r.s.products[m.ProductID]; ok {
		m.ProductName = p.Name
	}
	if u, ok := r.s.users[m.UserID]; ok {
		m.UserName = u.Name
	}
	return &m
}

func (r *MovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return r.withNames(m), nil
}

func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter, after *repository.MovementCursor, limit int) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if filter.From != nil && m.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.Until != nil && !m.OccurredAt.Before(*filter.Until) {
			continue
		}
		if filter.UserID > 0 && m.UserID != filter.UserID {
			continue
		}
		if filter.ProductID > 0 && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if after != nil && !before(m, *after) {
			continue
		}
		list = append(list, r.withNames(m))
	}
	sort.Slice(list, func(i, j int) bool {
		return before(*list[j], repository.MovementCursor{OccurredAt: list[i].OccurredAt, ID: list[i].ID})
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// before indica si m va después del cursor en orden descendente por (occurred_at, id).
func before(m entity.Movement, c repository.MovementCursor) bool {
	if !m.OccurredAt.Equal(c.OccurredAt) {
		return m.OccurredAt.Before(c.OccurredAt)
	}
	return m.ID < c.ID
}

func (r *MovementRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lockTables(r.inTx)()
	if _, ok := r.s.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.movements, id)
	return nil
}
