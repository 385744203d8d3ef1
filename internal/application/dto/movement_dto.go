package dto

import "time"

// RecordMovementRequest body para POST /api/movements.
// UserID es opcional: si viene debe coincidir con el usuario del token.
type RecordMovementRequest struct {
	ProductID   int64  `json:"product_id"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
}

// MovementFilterRequest filtros de GET /api/movements (todos opcionales, combinados con AND).
// Las fechas son días calendario (YYYY-MM-DD); date_to incluye el día completo.
type MovementFilterRequest struct {
	DateFrom  string `query:"date_from" json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `query:"date_to" json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	UserID    int64  `query:"user_id" json:"user_id" validate:"gte=0"`
	ProductID int64  `query:"product_id" json:"product_id" validate:"gte=0"`
	Type      string `query:"type" json:"type" validate:"omitempty,oneof=entrada salida"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	UserID      int64     `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MovementListResponse historial de movimientos, más reciente primero.
type MovementListResponse struct {
	Items     []MovementResponse `json:"items"`
	Total     int                `json:"total"`
	Truncated bool               `json:"truncated,omitempty"`
}
