package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isOutOfRange verifica si un valor excede el rango numérico de la columna (22003).
func isOutOfRange(err error) bool {
	return hasCode(err, "22003")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// nullableID convierte 0 en NULL para columnas de referencia opcionales.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
