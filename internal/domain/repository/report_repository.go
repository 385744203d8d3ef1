package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventorySummary totales del inventario para el panel de reportes.
type InventorySummary struct {
	Products       int
	TotalStock     int
	InventoryValue decimal.Decimal // suma de stock * precio
	LowStock       int
}

// ReportRepository consultas agregadas de solo lectura.
type ReportRepository interface {
	Summary(ctx context.Context) (*InventorySummary, error)
}
