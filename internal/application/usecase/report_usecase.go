package usecase

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura del panel.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, productRepo repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, productRepo: productRepo}
}

// Summary totales del inventario: productos, unidades, valor y bajo stock.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.InventorySummaryResponse, error) {
	s, err := uc.reportRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InventorySummaryResponse{
		Products:       s.Products,
		TotalStock:     s.TotalStock,
		InventoryValue: s.InventoryValue,
		LowStock:       s.LowStock,
	}, nil
}

// LowStock productos con stock en o bajo su mínimo.
func (uc *ReportUseCase) LowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{LowStock: true})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Items = append(out.Items, toProductResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}
