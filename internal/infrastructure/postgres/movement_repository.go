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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const selectMovement = `
	SELECT m.id, COALESCE(m.product_id, 0), m.type, m.quantity, m.description, COALESCE(m.user_id, 0),
		m.occurred_at, COALESCE(p.name, ''), COALESCE(u.name, '')
	FROM movements m
	LEFT JOIN products p ON p.id = m.product_id
	LEFT JOIN users u ON u.id = m.user_id`

func scanMovement(row rowScanner) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Description, &m.UserID,
		&m.OccurredAt, &m.ProductName, &m.UserName)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta el movimiento y completa ID y OccurredAt.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, type, quantity, description, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, occurred_at`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Type, m.Quantity, m.Description, nullableID(m.UserID),
	).Scan(&m.ID, &m.OccurredAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario o producto inexistente", domain.ErrInvalidInput)
		}
		if isOutOfRange(err) {
			return fmt.Errorf("%w: cantidad fuera de rango", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con nombres de producto y usuario.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, selectMovement+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve una página del historial ordenada por (occurred_at, id) descendente.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, after *repository.MovementCursor, limit int) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.From != nil {
		add("m.occurred_at >= $%d", *filter.From)
	}
	if filter.Until != nil {
		add("m.occurred_at < $%d", *filter.Until)
	}
	if filter.UserID > 0 {
		add("m.user_id = $%d", filter.UserID)
	}
	if filter.ProductID > 0 {
		add("m.product_id = $%d", filter.ProductID)
	}
	if filter.Type != "" {
		add("m.type = $%d", filter.Type)
	}
	if after != nil {
		args = append(args, after.OccurredAt, after.ID)
		where = append(where, fmt.Sprintf("(m.occurred_at, m.id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := selectMovement
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY m.occurred_at DESC, m.id DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0, limit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina el registro del movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
