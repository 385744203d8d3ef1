package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// CategoryRepo categorías en memoria. El nombre es único (sensible a mayúsculas, como la tabla).
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio sobre store.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.s.newID()
	c.CreatedAt = r.s.Now()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.categories {
		if id != c.ID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	c.CreatedAt = cur.CreatedAt
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Delete elimina la categoría y deja sin categoría a sus productos (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lockTables(false)()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.s.products[pid] = p
		}
	}
	return nil
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	s *Store
}

// NewLocationRepository construye el repositorio sobre store.
func NewLocationRepository(s *Store) *LocationRepo {
	return &LocationRepo{s: s}
}

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.locations {
		if existing.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	l.ID = r.s.newID()
	l.CreatedAt = r.s.Now()
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.locations[l.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.s.locations {
		if id != l.ID && existing.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	l.CreatedAt = cur.CreatedAt
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		list = append(list, &l)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Delete elimina la ubicación y deja sin ubicación a sus productos.
func (r *LocationRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lockTables(false)()
	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.locations, id)
	for pid, p := range r.s.products {
		if p.LocationID != nil && *p.LocationID == id {
			p.LocationID = nil
			r.s.products[pid] = p
		}
	}
	return nil
}
