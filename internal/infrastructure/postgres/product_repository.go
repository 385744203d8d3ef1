package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.code, p.name, p.description, p.category_id, p.location_id,
	p.stock, p.stock_minimum, p.price, p.image, p.version, p.created_at, p.updated_at`

const selectProduct = `
	SELECT ` + productColumns + `, COALESCE(c.name, ''), COALESCE(l.name, '')
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, withNames bool) (*entity.Product, error) {
	var p entity.Product
	dest := []any{
		&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID, &p.LocationID,
		&p.Stock, &p.StockMinimum, &p.Price, &p.Image, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &p.CategoryName, &p.LocationName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

// mapWriteError traduce violaciones de integridad a errores de dominio.
func mapWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: categoría o ubicación inexistente", domain.ErrInvalidInput)
	}
	if isOutOfRange(err) {
		return fmt.Errorf("%w: stock fuera de rango", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create persiste un nuevo producto y completa ID, Version y timestamps.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (code, name, description, category_id, location_id, stock, stock_minimum, price, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.Code, product.Name, product.Description, product.CategoryID, product.LocationID,
		product.Stock, product.StockMinimum, product.Price, product.Image,
	).Scan(&product.ID, &product.Version, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con nombres de categoría y ubicación.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, selectProduct+` WHERE p.id = $1`, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Debe usarse dentro de una tx.
// Sin joins: FOR UPDATE no se permite sobre el lado nulo de un LEFT JOIN.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update sobrescribe todos los campos editables e incrementa version.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, category_id = $5, location_id = $6,
			stock = $7, stock_minimum = $8, price = $9, image = $10,
			version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Code, product.Name, product.Description, product.CategoryID, product.LocationID,
		product.Stock, product.StockMinimum, product.Price, product.Image,
	).Scan(&product.Version, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapWriteError("update product", err)
	}
	return nil
}

// AdjustStock suma delta al stock del producto (usado por el libro de movimientos).
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx,
		`UPDATE products SET stock = stock + $2, version = version + 1, updated_at = now()
		 WHERE id = $1 RETURNING stock`,
		id, delta,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, mapWriteError("adjust product stock", err)
	}
	return stock, nil
}

// List lista productos por nombre aplicando los filtros no vacíos.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.code ILIKE $%d)", len(args), len(args)))
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.LocationID > 0 {
		args = append(args, filter.LocationID)
		where = append(where, fmt.Sprintf("p.location_id = $%d", len(args)))
	}
	if filter.LowStock {
		where = append(where, "p.stock <= p.stock_minimum")
	}
	query := selectProduct
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.name, p.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina físicamente el producto; los movimientos quedan con product_id NULL.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
