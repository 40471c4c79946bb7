package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
// Si fn retorna error se hace rollback de todo lo guardado.
type InvoiceTxRunner interface {
	RunInvoices(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error
}

// ReportMeta datos de cabecera de un reporte exportado.
type ReportMeta struct {
	Title       string
	Filter      repository.InvoiceFilterCriteria
	GeneratedAt time.Time
}

// InvoiceReportGenerator genera un archivo (XLSX, PDF) con un listado de facturas.
type InvoiceReportGenerator interface {
	Generate(ctx context.Context, invoices []*entity.Invoice, meta ReportMeta) ([]byte, error)
	ContentType() string
	Extension() string
}
