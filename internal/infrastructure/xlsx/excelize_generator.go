// Package xlsx genera el reporte en planilla del listado de facturas de energía.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/valueobject"
)

const (
	invoicesSheet = "invoices"
	summarySheet  = "summary"
)

var headers = []string{
	"customerNumber", "referenceMonth",
	"electricityKwh", "electricityCost",
	"sceeeEnergyKwh", "sceeeEnergyCost",
	"compensatedEnergyKwh", "compensatedEnergyCost",
	"lightingContribution", "totalCostWithoutGd", "gdSavings", "amountToPay",
	"downloadUrl",
}

var _ usecase.InvoiceReportGenerator = (*ExcelizeGenerator)(nil)

// ExcelizeGenerator implementa usecase.InvoiceReportGenerator con excelize.
// Los montos se escriben como número (exacto a 2 decimales) para que la planilla pueda sumarlos.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

func (g *ExcelizeGenerator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (g *ExcelizeGenerator) Extension() string { return "xlsx" }

// Generate arma la hoja "invoices" (una fila por factura) y "summary" (filtros y totales).
func (g *ExcelizeGenerator) Generate(_ context.Context, invoices []*entity.Invoice, meta usecase.ReportMeta) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", invoicesSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(invoicesSheet, cell, h)
	}
	var total, savings, toPay valueobject.Money
	for i, inv := range invoices {
		values := []any{
			inv.CustomerNumber(), inv.ReferenceMonth(),
			inv.ElectricityKwh(), amount(inv.ElectricityCost()),
			inv.SceeeEnergyKwh(), amount(inv.SceeeEnergyCost()),
			inv.CompensatedEnergyKwh(), amount(inv.CompensatedEnergyCost()),
			amount(inv.LightingContribution()), amount(inv.TotalCostWithoutGd()),
			amount(inv.GdSavings()), amount(inv.AmountToPay()),
			inv.DownloadURL(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(invoicesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		total = total.Add(inv.TotalCostWithoutGd())
		savings = savings.Add(inv.GdSavings())
		toPay = toPay.Add(inv.AmountToPay())
	}

	_ = f.SetCellValue(summarySheet, "A1", meta.Title)
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	_ = f.SetCellValue(summarySheet, "A4", "customerNumber")
	_ = f.SetCellValue(summarySheet, "B4", meta.Filter.CustomerNumber)
	_ = f.SetCellValue(summarySheet, "A5", "referenceMonth")
	_ = f.SetCellValue(summarySheet, "B5", meta.Filter.ReferenceMonth)
	_ = f.SetCellValue(summarySheet, "A6", "Invoices")
	_ = f.SetCellValue(summarySheet, "B6", len(invoices))
	_ = f.SetCellValue(summarySheet, "A7", "totalCostWithoutGd")
	_ = f.SetCellValue(summarySheet, "B7", amount(total))
	_ = f.SetCellValue(summarySheet, "A8", "gdSavings")
	_ = f.SetCellValue(summarySheet, "B8", amount(savings))
	_ = f.SetCellValue(summarySheet, "A9", "amountToPay")
	_ = f.SetCellValue(summarySheet, "B9", amount(toPay))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func amount(m valueobject.Money) float64 {
	return m.Decimal().Round(2).InexactFloat64()
}
