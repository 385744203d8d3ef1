package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// catalogTable CRUD compartido por categories y locations (mismas columnas).
type catalogTable struct {
	q     Querier
	table string
	label string
}

type catalogRow struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

func (t catalogTable) create(ctx context.Context, row *catalogRow) error {
	err := t.q.QueryRow(ctx,
		`INSERT INTO `+t.table+` (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		row.Name, row.Description,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.label, err)
	}
	return nil
}

func (t catalogTable) get(ctx context.Context, id int64) (*catalogRow, error) {
	var row catalogRow
	err := t.q.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM `+t.table+` WHERE id = $1`, id,
	).Scan(&row.ID, &row.Name, &row.Description, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.label, err)
	}
	return &row, nil
}

func (t catalogTable) update(ctx context.Context, row *catalogRow) error {
	err := t.q.QueryRow(ctx,
		`UPDATE `+t.table+` SET name = $2, description = $3 WHERE id = $1 RETURNING created_at`,
		row.ID, row.Name, row.Description,
	).Scan(&row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", t.label, err)
	}
	return nil
}

func (t catalogTable) list(ctx context.Context) ([]*catalogRow, error) {
	rows, err := t.q.Query(ctx, `SELECT id, name, description, created_at FROM `+t.table+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.label, err)
	}
	defer rows.Close()
	var list []*catalogRow
	for rows.Next() {
		var row catalogRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.label, err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

func (t catalogTable) delete(ctx context.Context, id int64) error {
	cmd, err := t.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.label, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	t catalogTable
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{t: catalogTable{q: q, table: "categories", label: "category"}}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	row := catalogRow{Name: c.Name, Description: c.Description}
	if err := r.t.create(ctx, &row); err != nil {
		return err
	}
	c.ID, c.CreatedAt = row.ID, row.CreatedAt
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	row, err := r.t.get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return &entity.Category{ID: row.ID, Name: row.Name, Description: row.Description, CreatedAt: row.CreatedAt}, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	row := catalogRow{ID: c.ID, Name: c.Name, Description: c.Description}
	if err := r.t.update(ctx, &row); err != nil {
		return err
	}
	c.CreatedAt = row.CreatedAt
	return nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Category{ID: row.ID, Name: row.Name, Description: row.Description, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	return r.t.delete(ctx, id)
}

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	t catalogTable
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{t: catalogTable{q: q, table: "locations", label: "location"}}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	row := catalogRow{Name: l.Name, Description: l.Description}
	if err := r.t.create(ctx, &row); err != nil {
		return err
	}
	l.ID, l.CreatedAt = row.ID, row.CreatedAt
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	row, err := r.t.get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return &entity.Location{ID: row.ID, Name: row.Name, Description: row.Description, CreatedAt: row.CreatedAt}, nil
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	row := catalogRow{ID: l.ID, Name: l.Name, Description: l.Description}
	if err := r.t.update(ctx, &row); err != nil {
		return err
	}
	l.CreatedAt = row.CreatedAt
	return nil
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Location, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Location{ID: row.ID, Name: row.Name, Description: row.Description, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	return r.t.delete(ctx, id)
}
