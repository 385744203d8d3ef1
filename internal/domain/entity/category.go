package entity

import "time"

// Category agrupa productos.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}
