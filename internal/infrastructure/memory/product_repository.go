package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// NewProductRepository construye el repositorio sobre store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lockTables(r.inTx)()
	if err := r.checkRefs(p); err != nil {
		return err
	}
	now := r.s.Now()
	p.ID = r.s.newID()
	p.Version = 1
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.products[p.ID] = *p
	return nil
}

// checkRefs equivale a las llaves foráneas de categoría y ubicación. Requiere mu tomado.
func (r *ProductRepo) checkRefs(p *entity.Product) error {
	if p.CategoryID != nil {
		if _, ok := r.s.categories[*p.CategoryID]; !ok {
			return fmt.Errorf("%w: categoría o ubicación inexistente", domain.ErrInvalidInput)
		}
	}
	if p.LocationID != nil {
		if _, ok := r.s.locations[*p.LocationID]; !ok {
			return fmt.Errorf("%w: categoría o ubicación inexistente", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.withNames(p), nil
}

// GetForUpdate equivale a GetByID: TxRunner ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// withNames completa los nombres de categoría y ubicación. Requiere mu tomado.
func (r *ProductRepo) withNames(p entity.Product) *entity.Product {
	p.CategoryName, p.LocationName = "", ""
	if p.CategoryID != nil {
		p.CategoryName = r.s.categories[*p.CategoryID].Name
	}
	if p.LocationID != nil {
		p.LocationName = r.s.locations[*p.LocationID].Name
	}
	return &p
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lockTables(r.inTx)()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.checkRefs(p); err != nil {
		return err
	}
	p.Version = cur.Version + 1
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.Now()
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, id int64, delta int) (int, error) {
	defer r.s.lockTables(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	// Igual que la columna INTEGER: fuera de rango no se escribe.
	if next := p.Stock + delta; next > entity.MaxStock || next < -entity.MaxStock-1 {
		return 0, fmt.Errorf("%w: stock fuera de rango", domain.ErrInvalidInput)
	}
	p.Stock += delta
	p.Version++
	p.UpdatedAt = r.s.Now()
	r.s.products[id] = p
	return p.Stock, nil
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(filter.Search)
	var list []*entity.Product
	for _, p := range r.s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.Code), search) {
			continue
		}
		if filter.CategoryID > 0 && (p.CategoryID == nil || *p.CategoryID != filter.CategoryID) {
			continue
		}
		if filter.LocationID > 0 && (p.LocationID == nil || *p.LocationID != filter.LocationID) {
			continue
		}
		if filter.LowStock && !p.IsLowStock() {
			continue
		}
		list = append(list, r.withNames(p))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lockTables(r.inTx)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	// Igual que ON DELETE SET NULL.
	for mid, m := range r.s.movements {
		if m.ProductID == id {
			m.ProductID = 0
			r.s.movements[mid] = m
		}
	}
	return nil
}
