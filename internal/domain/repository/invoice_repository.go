package repository

import (
	"context"

	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
)

// InvoiceFilterCriteria filtros opcionales; los no vacíos se combinan con AND.
type InvoiceFilterCriteria struct {
	CustomerNumber string
	ReferenceMonth string // YYYY-MM
}

// IsEmpty indica que no hay ningún filtro activo.
func (c InvoiceFilterCriteria) IsEmpty() bool {
	return c.CustomerNumber == "" && c.ReferenceMonth == ""
}

// InvoiceRepository define el puerto de persistencia para Invoice (DIP).
type InvoiceRepository interface {
	// Save inserta o reemplaza la factura del par (customerNumber, referenceMonth).
	Save(ctx context.Context, invoice *entity.Invoice) error
	FindAll(ctx context.Context) ([]*entity.Invoice, error)
	FindByFilters(ctx context.Context, criteria InvoiceFilterCriteria) ([]*entity.Invoice, error)
}
