package entity

import "time"

// Tipos de movimiento de inventario (valores del contrato HTTP).
const (
	MovementTypeEntry = "entrada"
	MovementTypeExit  = "salida"
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// Movement es un registro inmutable de un evento que afecta el stock de un producto.
type Movement struct {
	ID          int64
	ProductID   int64 // 0 si el producto fue eliminado después del registro
	Type        string
	Quantity    int
	Description string
	UserID      int64 // 0 = sin usuario atribuido
	OccurredAt  time.Time
	ProductName string // solo lectura (join)
	UserName    string // solo lectura (join)
}

// Delta devuelve el efecto del movimiento sobre Product.Stock.
func (m *Movement) Delta() int {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
