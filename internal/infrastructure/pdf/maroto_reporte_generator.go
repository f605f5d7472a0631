// Package pdf implementa la generación del reporte ejecutivo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Algasur - Reporte Ejecutivo  │  Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Cumplimiento | Producción | Inventario | Ingresos    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Especie | Inventario (kg)                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: nivel + título + detalle                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/algasur/algas-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRojo    = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorAmbar   = &props.Color{Red: 190, Green: 130, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReporteGenerator genera el reporte ejecutivo usando Maroto v2.
type MarotoReporteGenerator struct{}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator() *MarotoReporteGenerator { return &MarotoReporteGenerator{} }

// GenerarReportePDF genera el PDF del resumen ejecutivo y devuelve sus bytes.
func (g *MarotoReporteGenerator) GenerarReportePDF(_ context.Context, resumen *dto.DashboardResumenDTO, emitido time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte Ejecutivo Algasur", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(emitido))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(resumen))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(inventarioHeaderRow())
	for _, r := range inventarioRows(resumen.Inventario) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range alertaRows(resumen.Alertas) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(emitido time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("ALGASUR", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte Ejecutivo de Operaciones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+emitido.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// kpiRow: los cuatro indicadores con su variación respecto al período anterior.
func kpiRow(r *dto.DashboardResumenDTO) core.Row {
	return row.New(16).Add(
		kpiCol("Cumplimiento", fmt.Sprintf("%.2f%%", r.CumplimientoContractual), r.CumplimientoVar),
		kpiCol("Producción mes", fmt.Sprintf("%.0f kg", r.ProduccionMensual), r.ProduccionVar),
		kpiCol("Inventario", fmt.Sprintf("%.0f kg", r.InventarioTotal), r.InventarioVar),
		kpiCol("Ingresos proy.", fmt.Sprintf("$%.0f CLP", r.IngresosProyectados), r.IngresosVar),
	)
}

func kpiCol(titulo, valor string, variacion float64) core.Col {
	return col.New(3).Add(
		text.New(titulo, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New(valor, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		text.New(fmt.Sprintf("%+.2f%%", variacion), props.Text{Size: 7, Top: 12, Color: colorGray}),
	)
}

func inventarioHeaderRow() core.Row {
	return row.New(8).
		WithStyle(&props.Cell{BackgroundColor: colorPrimary}).
		Add(
			col.New(8).Add(text.New("Especie", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2, Left: 2,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			})),
			col.New(4).Add(text.New("Inventario (kg)", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2, Align: align.Right,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			})),
		)
}

func inventarioRows(inventario []dto.InventarioEspecieDTO) []core.Row {
	rows := make([]core.Row, 0, len(inventario))
	for _, inv := range inventario {
		rows = append(rows, row.New(7).Add(
			col.New(8).Add(text.New(inv.Nombre, props.Text{Size: 9, Top: 1, Left: 2})),
			col.New(4).Add(text.New(inv.Cantidad.StringFixed(2), props.Text{
				Size: 9, Top: 1, Align: align.Right,
			})),
		))
	}
	return rows
}

func alertaRows(alertas []dto.AlertaDTO) []core.Row {
	if len(alertas) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin alertas activas", props.Text{Size: 9, Top: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(alertas))
	for _, a := range alertas {
		rows = append(rows, row.New(9).Add(
			col.New(2).Add(text.New(a.Nivel, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 2, Color: colorNivel(a.Nivel),
			})),
			col.New(4).Add(text.New(a.Titulo, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2})),
			col.New(6).Add(text.New(a.Detalle, props.Text{Size: 8, Top: 2, Color: colorGray})),
		))
	}
	return rows
}

func colorNivel(nivel string) *props.Color {
	switch nivel {
	case "alto":
		return colorRojo
	case "medio":
		return colorAmbar
	default:
		return colorGray
	}
}
