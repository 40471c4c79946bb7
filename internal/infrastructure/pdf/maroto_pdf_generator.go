// Package pdf genera el reporte PDF del listado de facturas de energía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título              │  Fecha de generación          │
//	│  FILTROS: Cliente / Mes                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | Mes | kWh | Total s/GD | Econ. GD | A pagar │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	│  QR al PDF de la distribuidora (si hay una sola factura)     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/valueobject"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 98, Blue: 65}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.InvoiceReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.InvoiceReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func (g *MarotoPDFGenerator) ContentType() string { return "application/pdf" }
func (g *MarotoPDFGenerator) Extension() string   { return "pdf" }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(_ context.Context, invoices []*entity.Invoice, meta usecase.ReportMeta) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(meta.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta))
	m.AddRows(filterRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(invoices) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhuma fatura encontrada.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableDetailRows(invoices) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoices))

	if len(invoices) == 1 && invoices[0].DownloadURL() != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(qrRow(invoices[0].DownloadURL()))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(meta usecase.ReportMeta) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(meta.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func filterRow(meta usecase.ReportMeta) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Cliente: %s   |   Mês de referência: %s",
			nonEmpty(meta.Filter.CustomerNumber, "todos"),
			nonEmpty(meta.Filter.ReferenceMonth, "todos"),
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cliente", 3, align.Left),
		h("Mês", 1, align.Center),
		h("Energia (kWh)", 2, align.Right),
		h("Total s/ GD", 2, align.Right),
		h("Economia GD", 2, align.Right),
		h("A pagar", 2, align.Right),
	)
}

// tableDetailRows una fila por factura.
func tableDetailRows(invoices []*entity.Invoice) []core.Row {
	result := make([]core.Row, 0, len(invoices))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, inv := range invoices {
		result = append(result, row.New(7).Add(
			cell(inv.CustomerNumber(), 3, align.Left),
			cell(inv.ReferenceMonth(), 1, align.Center),
			cell(inv.ElectricityKwh(), 2, align.Right),
			cell("R$ "+inv.TotalCostWithoutGd().FormatGrouped(), 2, align.Right),
			cell("R$ "+inv.GdSavings().FormatGrouped(), 2, align.Right),
			cell("R$ "+inv.AmountToPay().FormatGrouped(), 2, align.Right),
		))
	}
	return result
}

// totalsRow suma de las columnas monetarias.
func totalsRow(invoices []*entity.Invoice) core.Row {
	var total, savings, toPay valueobject.Money
	for _, inv := range invoices {
		total = total.Add(inv.TotalCostWithoutGd())
		savings = savings.Add(inv.GdSavings())
		toPay = toPay.Add(inv.AmountToPay())
	}
	value := func(m valueobject.Money) core.Col {
		return col.New(2).Add(text.New("R$ "+m.FormatGrouped(), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		col.New(6).Add(text.New(fmt.Sprintf("TOTAL (%d faturas)", len(invoices)), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Left: 1,
		})),
		value(total),
		value(savings),
		value(toPay),
	)
}

func qrRow(url string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Escaneie o código QR para baixar\na fatura original da distribuidora.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(url, props.Text{Size: 7, Top: 16, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
