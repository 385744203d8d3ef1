package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// Formatos de exportación del historial.
const (
	ExportFormatPDF = "pdf"
	ExportFormatCSV = "csv"
)

// MovementReport datos del historial a exportar.
type MovementReport struct {
	Title       string
	GeneratedAt time.Time
	DateFrom    string
	DateTo      string
	Movements   []*entity.Movement
}

// MovementRenderer genera el documento del historial (PDF, CSV).
type MovementRenderer interface {
	ContentType() string
	FileExtension() string
	Render(report *MovementReport) ([]byte, error)
}

// ExportMovements construye el reporte con los mismos filtros del listado y lo renderiza.
func (uc *LedgerUseCase) ExportMovements(ctx context.Context, in dto.MovementFilterRequest, renderer MovementRenderer) ([]byte, error) {
	filter, err := ParseMovementFilter(in)
	if err != nil {
		return nil, err
	}
	report := &MovementReport{
		Title:       "Historial de movimientos",
		GeneratedAt: time.Now(),
		DateFrom:    in.DateFrom,
		DateTo:      in.DateTo,
	}
	for m, err := range uc.ListMovements(ctx, filter) {
		if err != nil {
			return nil, err
		}
		report.Movements = append(report.Movements, m)
	}
	return renderer.Render(report)
}
