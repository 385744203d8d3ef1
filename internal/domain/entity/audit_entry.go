package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditActionCreateProduct  = "Agregar producto"
	AuditActionUpdateProduct  = "Editar producto"
	AuditActionDeleteProduct  = "Eliminar producto"
	AuditActionRecordMovement = "Registrar movimiento"
	AuditActionDeleteMovement = "Eliminar movimiento"
)

// AuditEntry entrada de la bitácora: quién hizo qué y cuándo. Solo se agrega, nunca se edita.
type AuditEntry struct {
	ID          int64
	UserID      int64
	UserName    string // solo lectura (join)
	Action      string
	Description string
	OccurredAt  time.Time
}
