package entity

import "time"

// Location ubicación física donde se almacena un producto (estante, bodega, vitrina).
type Location struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}
