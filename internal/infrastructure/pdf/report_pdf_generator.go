// Package pdf genera la versión imprimible del reporte de desperdicio evitado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: SafeAlert + tipo de reporte │ Período + fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos salvados | dinero ahorrado | kg evitados │
//	│  RECOMENDACIONES                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Resuelta | Stock | P.Unit | Valor         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/reportes"
	"github.com/safealert/safealert-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAccent  = &props.Color{Red: 239, Green: 68, Blue: 68}
)

var _ reportes.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reportes.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(
	_ context.Context,
	rep *dto.ReportDTO,
	items []entity.ResolvedAlert,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte SafeAlert", true).
		WithAuthor("SafeAlert", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Statistics))
	for _, r := range recommendationRows(rep.Recommendations) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *dto.ReportDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("SafeAlert", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de "+strings.ToUpper(rep.ReportType)+" evitado", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rep.StartDate+" a "+rep.EndDate, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: las tres estadísticas en columnas.
func summaryRow(st dto.ReportStatisticsDTO) core.Row {
	box := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 8,
			}),
		)
	}
	return row.New(20).Add(
		box("PRODUCTOS SALVADOS", fmt.Sprintf("%d", st.SavedProducts)),
		box("DINERO AHORRADO", "$"+formatMoney(st.MoneySaved)),
		box("KG DE DESPERDICIO EVITADO", formatMoney(st.WasteAvoidedKg)+" kg"),
	)
}

func recommendationRows(recs []dto.ReportRecommendationDTO) []core.Row {
	if len(recs) == 0 {
		return nil
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("RECOMENDACIONES", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, r := range recs {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(r.Message, props.Text{Size: 9, Top: 1, Left: 2}),
			text.New("→ "+r.Action, props.Text{Size: 8, Top: 5.5, Left: 4, Color: colorGray}),
		)))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Fecha alerta", 2, align.Center),
		h("Stock", 1, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Valor salvado", 2, align.Right),
	)
}

// tableRows: una fila por alerta resuelta.
func tableRows(items []entity.ResolvedAlert) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New(
			"No hay alertas resueltas en el período.",
			props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorAccent},
		)))}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		value := it.UnitPrice.Mul(it.StockQuantity)
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(nonEmpty(it.ProductName, "(producto eliminado)"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.CreatedAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(it.StockQuantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(value),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(
		"Valor salvado = precio unitario × stock. Kg estimados a 0,5 kg por unidad.",
		props.Text{Size: 6.5, Color: colorGray, Top: 2},
	)))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal (2 decimales).
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
