package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas del panel.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Summary totales de productos, unidades, valor (stock * precio) y productos en bajo stock.
func (r *ReportRepo) Summary(ctx context.Context) (*repository.InventorySummary, error) {
	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
			COALESCE(sum(stock), 0),
			COALESCE(sum(stock * price), 0),
			count(*) FILTER (WHERE stock <= stock_minimum)
		FROM products`,
	).Scan(&s.Products, &s.TotalStock, &s.InventoryValue, &s.LowStock)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &s, nil
}
