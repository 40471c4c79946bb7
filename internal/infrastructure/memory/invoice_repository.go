package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepository)(nil)
	_ usecase.InvoiceTxRunner      = (*InvoiceRepository)(nil)
)

// InvoiceRepository repositorio en memoria para tests e importaciones en modo dry-run.
// Mismo orden y misma semántica de upsert que el adaptador PostgreSQL.
type InvoiceRepository struct {
	mu   sync.RWMutex
	data map[string]*entity.Invoice
}

// NewInvoiceRepository construye el repositorio, opcionalmente con datos iniciales.
func NewInvoiceRepository(seed ...*entity.Invoice) *InvoiceRepository {
	r := &InvoiceRepository{data: make(map[string]*entity.Invoice, len(seed))}
	for _, inv := range seed {
		r.data[invoiceKey(inv)] = inv
	}
	return r
}

// Save inserta o reemplaza por (customerNumber, referenceMonth).
func (r *InvoiceRepository) Save(ctx context.Context, invoice *entity.Invoice) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[invoiceKey(invoice)] = invoice
	return nil
}

// FindAll devuelve todas las facturas.
func (r *InvoiceRepository) FindAll(ctx context.Context) ([]*entity.Invoice, error) {
	return r.FindByFilters(ctx, repository.InvoiceFilterCriteria{})
}

// FindByFilters aplica los filtros no vacíos con AND.
func (r *InvoiceRepository) FindByFilters(ctx context.Context, criteria repository.InvoiceFilterCriteria) ([]*entity.Invoice, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Invoice, 0, len(r.data))
	for _, inv := range r.data {
		if criteria.CustomerNumber != "" && inv.CustomerNumber() != criteria.CustomerNumber {
			continue
		}
		if criteria.ReferenceMonth != "" && inv.ReferenceMonth() != criteria.ReferenceMonth {
			continue
		}
		result = append(result, inv)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ReferenceMonth() != result[j].ReferenceMonth() {
			return result[i].ReferenceMonth() > result[j].ReferenceMonth()
		}
		return result[i].CustomerNumber() < result[j].CustomerNumber()
	})
	return result, nil
}

// Len cantidad de facturas almacenadas.
func (r *InvoiceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// RunInvoices ejecuta fn sobre una copia; solo si fn no falla la copia reemplaza los datos.
func (r *InvoiceRepository) RunInvoices(ctx context.Context, fn func(repo repository.InvoiceRepository) error) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := &InvoiceRepository{data: make(map[string]*entity.Invoice, len(r.data))}
	for k, v := range r.data {
		staged.data[k] = v
	}
	if err := fn(staged); err != nil {
		return err
	}
	r.data = staged.data
	return nil
}

func invoiceKey(inv *entity.Invoice) string {
	return inv.CustomerNumber() + "|" + inv.ReferenceMonth()
}
