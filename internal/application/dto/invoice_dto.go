package dto

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var referenceMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Formatos de exportación soportados.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// FilterInvoicesRequest query de GET /api/invoices/filter. nil = parámetro ausente.
type FilterInvoicesRequest struct {
	CustomerNumber *string // 12345678
	ReferenceMonth *string // 2025-03
}

// Validate devuelve los errores por campo (vacío si es válido).
func (r FilterInvoicesRequest) Validate() []FieldError {
	var errs []FieldError
	if r.ReferenceMonth != nil && !referenceMonthPattern.MatchString(*r.ReferenceMonth) {
		errs = append(errs, FieldError{Path: "referenceMonth", Message: "Invalid, expected format YYYY-MM"})
	}
	return errs
}

// ExportInvoicesRequest query de GET /api/invoices/export.
type ExportInvoicesRequest struct {
	Filter FilterInvoicesRequest
	Format string // xlsx (por defecto) | pdf
}

// Validate valida filtros y formato.
func (r ExportInvoicesRequest) Validate() []FieldError {
	errs := r.Filter.Validate()
	switch r.Format {
	case ExportFormatXLSX, ExportFormatPDF:
	default:
		errs = append(errs, FieldError{Path: "format", Message: "Invalid, expected one of xlsx, pdf"})
	}
	return errs
}

// JoinFieldErrors concatena los errores como "path - message, path - message".
func JoinFieldErrors(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

// MoneyResponse monto en respuestas: valor exacto y texto pt-BR sin agrupación.
type MoneyResponse struct {
	Value     decimal.Decimal `json:"value" swaggertype:"number"`
	Formatted string          `json:"formatted"`
}

// MarshalJSON emite value como número JSON (decimal.Decimal lo serializa entre comillas).
func (m MoneyResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value     json.Number `json:"value"`
		Formatted string      `json:"formatted"`
	}{
		Value:     json.Number(m.Value.String()),
		Formatted: m.Formatted,
	})
}

// InvoiceResponse factura en respuestas (claves camelCase).
type InvoiceResponse struct {
	CustomerNumber        string        `json:"customerNumber"`
	ReferenceMonth        string        `json:"referenceMonth"`
	ElectricityKwh        string        `json:"electricityKwh"`
	ElectricityCost       MoneyResponse `json:"electricityCost"`
	SceeeEnergyKwh        string        `json:"sceeeEnergyKwh"`
	SceeeEnergyCost       MoneyResponse `json:"sceeeEnergyCost"`
	CompensatedEnergyKwh  string        `json:"compensatedEnergyKwh"`
	CompensatedEnergyCost MoneyResponse `json:"compensatedEnergyCost"`
	LightingContribution  MoneyResponse `json:"lightingContribution"`
	TotalCostWithoutGd    MoneyResponse `json:"totalCostWithoutGd"`
	GdSavings             MoneyResponse `json:"gdSavings"`
	AmountToPay           MoneyResponse `json:"amountToPay"`
	DownloadURL           string        `json:"downloadUrl,omitempty"`
}

// ImportInvoiceRequest registro de importación; montos en texto pt-BR ("1.234,56").
type ImportInvoiceRequest struct {
	CustomerNumber        string `json:"customerNumber"`
	ReferenceMonth        string `json:"referenceMonth"`
	ElectricityKwh        string `json:"electricityKwh"`
	ElectricityCost       string `json:"electricityCost"`
	SceeeEnergyKwh        string `json:"sceeeEnergyKwh"`
	SceeeEnergyCost       string `json:"sceeeEnergyCost"`
	CompensatedEnergyKwh  string `json:"compensatedEnergyKwh"`
	CompensatedEnergyCost string `json:"compensatedEnergyCost"`
	LightingContribution  string `json:"lightingContribution"`
	AmountToPay           string `json:"amountToPay"`
	DownloadURL           string `json:"downloadUrl,omitempty"`
}

// Validate exige cliente y mes válido; los montos se validan al construir la entidad.
func (r ImportInvoiceRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.CustomerNumber) == "" {
		errs = append(errs, FieldError{Path: "customerNumber", Message: "Required"})
	}
	if !referenceMonthPattern.MatchString(r.ReferenceMonth) {
		errs = append(errs, FieldError{Path: "referenceMonth", Message: "Invalid, expected format YYYY-MM"})
	}
	return errs
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Imported int `json:"imported"`
}

// ExportFile archivo generado por la exportación.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
