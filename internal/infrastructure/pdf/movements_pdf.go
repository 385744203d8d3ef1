// Package pdf genera el historial de movimientos en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas  │  Fecha de generación        │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cantidad | Usuario | Descr.    │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TOTALES: movimientos / unidades de entrada / unidades de salida │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorEntry   = &props.Color{Red: 22, Green: 128, Blue: 61}
	colorExit    = &props.Color{Red: 185, Green: 28, Blue: 28}
)

const maxDescription = 70

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ inventory.MovementRenderer = (*MovementsPDF)(nil)

// MovementsPDF implementa inventory.MovementRenderer usando Maroto v2.
type MovementsPDF struct {
	author string
}

// NewMovementsPDF construye el renderer; author aparece en los metadatos del documento.
func NewMovementsPDF(author string) *MovementsPDF { return &MovementsPDF{author: author} }

func (g *MovementsPDF) ContentType() string   { return "application/pdf" }
func (g *MovementsPDF) FileExtension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MovementsPDF) Render(report *inventory.MovementReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Movements) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *inventory.MovementReport) core.Row {
	rango := "Todos los movimientos"
	if report.DateFrom != "" || report.DateTo != "" {
		rango = fmt.Sprintf("Desde %s hasta %s", nonEmpty(report.DateFrom, "el inicio"), nonEmpty(report.DateTo, "hoy"))
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Cantidad", 1, align.Right),
		h("Usuario", 2, align.Left),
		h("Descripción", 3, align.Left),
	)
}

func tableRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	cell := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
	}
	for _, m := range movements {
		kindColor := colorEntry
		if m.Type == entity.MovementTypeExit {
			kindColor = colorExit
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(cell(m.OccurredAt.Format("02/01/2006 15:04"), align.Left)),
			col.New(3).Add(cell(nonEmpty(m.ProductName, "(eliminado)"), align.Left)),
			col.New(1).Add(text.New(m.Type, props.Text{Size: 8, Align: align.Center, Top: 1, Color: kindColor})),
			col.New(1).Add(cell(strconv.Itoa(m.Quantity), align.Right)),
			col.New(2).Add(cell(nonEmpty(m.UserName, "-"), align.Left)),
			col.New(3).Add(cell(truncate(m.Description, maxDescription), align.Left)),
		))
	}
	return result
}

func totalsRow(movements []*entity.Movement) core.Row {
	var in, out int
	for _, m := range movements {
		if m.Type == entity.MovementTypeExit {
			out += m.Quantity
		} else {
			in += m.Quantity
		}
	}
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Movimientos: %d   |   Unidades de entrada: %d   |   Unidades de salida: %d", len(movements), in, out),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas agregando "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
