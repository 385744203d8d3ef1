package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// ProductFilter criterios de listado de productos. Campos vacíos no restringen.
type ProductFilter struct {
	Search     string // coincide con código o nombre (ILIKE)
	CategoryID int64
	LocationID int64
	LowStock   bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update sobrescribe todos los campos editables (incluido Stock) e incrementa Version.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock y devuelve el stock resultante.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Delete elimina físicamente; ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
