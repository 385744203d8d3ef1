// Package export genera el historial de movimientos en CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
)

var _ inventory.MovementRenderer = (*MovementsCSV)(nil)

// MovementsCSV implementa inventory.MovementRenderer en CSV separado por comas (UTF-8 con BOM
// para que las hojas de cálculo respeten las tildes).
type MovementsCSV struct{}

// NewMovementsCSV construye el renderer.
func NewMovementsCSV() *MovementsCSV { return &MovementsCSV{} }

func (MovementsCSV) ContentType() string   { return "text/csv; charset=utf-8" }
func (MovementsCSV) FileExtension() string { return "csv" }

const bom = "\ufeff"

var header = []string{"ID", "Fecha", "Producto", "Tipo", "Cantidad", "Usuario", "Descripción"}

// Render escribe una fila por movimiento en el orden recibido.
func (MovementsCSV) Render(report *inventory.MovementReport) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(bom)
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	for _, m := range report.Movements {
		rec := []string{
			strconv.FormatInt(m.ID, 10),
			m.OccurredAt.Format("2006-01-02 15:04:05"),
			m.ProductName,
			m.Type,
			strconv.Itoa(m.Quantity),
			m.UserName,
			m.Description,
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
