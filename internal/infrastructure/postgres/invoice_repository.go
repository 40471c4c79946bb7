package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
	"github.com/jhoicas/energy-invoices-api/internal/domain/valueobject"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
		customer_number, reference_month,
		electricity_kwh, electricity_cost,
		sceee_energy_kwh, sceee_energy_cost,
		compensated_energy_kwh, compensated_energy_cost,
		lighting_contribution, amount_to_pay, download_url`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Save inserta la factura o reemplaza la existente del mismo cliente y mes.
// Los totales derivados se guardan para consultas SQL; al leer se recalculan.
func (r *InvoiceRepo) Save(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id,` + invoiceColumns + `,
		                      total_cost_without_gd, gd_savings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
		ON CONFLICT (customer_number, reference_month) DO UPDATE
		SET electricity_kwh         = EXCLUDED.electricity_kwh,
		    electricity_cost        = EXCLUDED.electricity_cost,
		    sceee_energy_kwh        = EXCLUDED.sceee_energy_kwh,
		    sceee_energy_cost       = EXCLUDED.sceee_energy_cost,
		    compensated_energy_kwh  = EXCLUDED.compensated_energy_kwh,
		    compensated_energy_cost = EXCLUDED.compensated_energy_cost,
		    lighting_contribution   = EXCLUDED.lighting_contribution,
		    amount_to_pay           = EXCLUDED.amount_to_pay,
		    download_url            = EXCLUDED.download_url,
		    total_cost_without_gd   = EXCLUDED.total_cost_without_gd,
		    gd_savings              = EXCLUDED.gd_savings,
		    updated_at              = now()`
	_, err := r.q.Exec(ctx, query,
		uuid.New().String(),
		invoice.CustomerNumber(), invoice.ReferenceMonth(),
		invoice.ElectricityKwh(), invoice.ElectricityCost().Decimal(),
		invoice.SceeeEnergyKwh(), invoice.SceeeEnergyCost().Decimal(),
		invoice.CompensatedEnergyKwh(), invoice.CompensatedEnergyCost().Decimal(),
		invoice.LightingContribution().Decimal(), invoice.AmountToPay().Decimal(),
		nullIfEmpty(invoice.DownloadURL()),
		invoice.TotalCostWithoutGd().Decimal(), invoice.GdSavings().Decimal(),
	)
	if err != nil {
		return fmt.Errorf("upsert invoice: %w", err)
	}
	return nil
}

// FindAll devuelve todas las facturas.
func (r *InvoiceRepo) FindAll(ctx context.Context) ([]*entity.Invoice, error) {
	return r.FindByFilters(ctx, repository.InvoiceFilterCriteria{})
}

// FindByFilters aplica con AND los filtros no vacíos.
func (r *InvoiceRepo) FindByFilters(ctx context.Context, criteria repository.InvoiceFilterCriteria) ([]*entity.Invoice, error) {
	query, args := buildFilterQuery(criteria)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("list invoices (¿migraciones pendientes?): %w", err)
		}
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return list, nil
}

// buildFilterQuery arma el SELECT con placeholders posicionales.
func buildFilterQuery(criteria repository.InvoiceFilterCriteria) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT` + invoiceColumns + ` FROM invoices WHERE 1=1`)
	args := []any{}
	pos := 1
	if criteria.CustomerNumber != "" {
		sb.WriteString(fmt.Sprintf(" AND customer_number = $%d", pos))
		args = append(args, criteria.CustomerNumber)
		pos++
	}
	if criteria.ReferenceMonth != "" {
		sb.WriteString(fmt.Sprintf(" AND reference_month = $%d", pos))
		args = append(args, criteria.ReferenceMonth)
	}
	sb.WriteString(" ORDER BY reference_month DESC, customer_number ASC")
	return sb.String(), args
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		customer, month, elecKwh, sceeeKwh, compKwh string
		elecCost, sceeeCost, compCost, lighting     decimal.Decimal
		amount                                      decimal.Decimal
		downloadURL                                 *string
	)
	if err := row.Scan(
		&customer, &month,
		&elecKwh, &elecCost,
		&sceeeKwh, &sceeeCost,
		&compKwh, &compCost,
		&lighting, &amount, &downloadURL,
	); err != nil {
		return nil, err
	}
	return entity.NewInvoice(entity.InvoiceParams{
		CustomerNumber:        customer,
		ReferenceMonth:        month,
		ElectricityKwh:        elecKwh,
		ElectricityCost:       valueobject.FromDecimal(elecCost),
		SceeeEnergyKwh:        sceeeKwh,
		SceeeEnergyCost:       valueobject.FromDecimal(sceeeCost),
		CompensatedEnergyKwh:  compKwh,
		CompensatedEnergyCost: valueobject.FromDecimal(compCost),
		LightingContribution:  valueobject.FromDecimal(lighting),
		AmountToPay:           valueobject.FromDecimal(amount),
		DownloadURL:           derefStr(downloadURL),
	}), nil
}
