package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/domain"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
)

// ExportUseCase exporta el listado (filtrado) de facturas a un archivo.
type ExportUseCase struct {
	repo       repository.InvoiceRepository
	generators map[string]InvoiceReportGenerator
	now        func() time.Time
}

// NewExportUseCase registra un generador por formato (dto.ExportFormatXLSX, dto.ExportFormatPDF).
func NewExportUseCase(repo repository.InvoiceRepository, generators map[string]InvoiceReportGenerator) *ExportUseCase {
	return &ExportUseCase{repo: repo, generators: generators, now: time.Now}
}

// Export genera el archivo. Un formato sin generador registrado es 422.
func (uc *ExportUseCase) Export(ctx context.Context, in dto.ExportInvoicesRequest) (*dto.ExportFile, error) {
	gen, ok := uc.generators[in.Format]
	if !ok {
		return nil, domain.NewUnprocessableEntity("format - unsupported export format " + in.Format)
	}
	criteria := toCriteria(in.Filter)
	list, err := uc.repo.FindByFilters(ctx, criteria)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	content, err := gen.Generate(ctx, list, ReportMeta{
		Title:       "Faturas de energia",
		Filter:      criteria,
		GeneratedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", in.Format, err)
	}
	return &dto.ExportFile{
		Filename:    exportFilename(criteria, now, gen.Extension()),
		ContentType: gen.ContentType(),
		Content:     content,
	}, nil
}

// exportFilename faturas[_<cliente>][_<mes>]_<yyyymmddhhmmss>.<ext>
func exportFilename(c repository.InvoiceFilterCriteria, now time.Time, ext string) string {
	parts := []string{"faturas"}
	if c.CustomerNumber != "" {
		parts = append(parts, sanitizeFilenamePart(c.CustomerNumber))
	}
	if c.ReferenceMonth != "" {
		parts = append(parts, c.ReferenceMonth)
	}
	parts = append(parts, now.Format("20060102150405"))
	return strings.Join(parts, "_") + "." + ext
}

func sanitizeFilenamePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-':
			return r
		default:
			return '-'
		}
	}, s)
}
