package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/domain"
	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
)

// ImportUseCase carga facturas extraídas de los PDF de la distribuidora.
type ImportUseCase struct {
	tx InvoiceTxRunner
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx InvoiceTxRunner) *ImportUseCase {
	return &ImportUseCase{tx: tx}
}

// Import valida y construye todas las entidades antes de abrir la transacción; luego
// guarda (upsert) cada una. Un registro inválido aborta la importación completa con 400.
func (uc *ImportUseCase) Import(ctx context.Context, records []dto.ImportInvoiceRequest) (dto.ImportResult, error) {
	invoices := make([]*entity.Invoice, 0, len(records))
	for i, rec := range records {
		if errs := rec.Validate(); len(errs) > 0 {
			return dto.ImportResult{}, domain.NewBadRequest(
				fmt.Sprintf("record %d: %s", i, dto.JoinFieldErrors(errs)),
			).Wrap(domain.ErrInvalidInput)
		}
		inv, err := entity.NewInvoiceFromRaw(toRawInvoice(rec))
		if err != nil {
			return dto.ImportResult{}, domain.NewBadRequest(fmt.Sprintf("record %d: %v", i, err)).Wrap(err)
		}
		invoices = append(invoices, inv)
	}
	if len(invoices) == 0 {
		return dto.ImportResult{}, nil
	}

	err := uc.tx.RunInvoices(ctx, func(repo repository.InvoiceRepository) error {
		for _, inv := range invoices {
			if err := repo.Save(ctx, inv); err != nil {
				return fmt.Errorf("save invoice %s/%s: %w", inv.CustomerNumber(), inv.ReferenceMonth(), err)
			}
		}
		return nil
	})
	if err != nil {
		return dto.ImportResult{}, err
	}
	return dto.ImportResult{Imported: len(invoices)}, nil
}

func toRawInvoice(r dto.ImportInvoiceRequest) entity.RawInvoice {
	return entity.RawInvoice{
		CustomerNumber:        r.CustomerNumber,
		ReferenceMonth:        r.ReferenceMonth,
		ElectricityKwh:        r.ElectricityKwh,
		ElectricityCost:       r.ElectricityCost,
		SceeeEnergyKwh:        r.SceeeEnergyKwh,
		SceeeEnergyCost:       r.SceeeEnergyCost,
		CompensatedEnergyKwh:  r.CompensatedEnergyKwh,
		CompensatedEnergyCost: r.CompensatedEnergyCost,
		LightingContribution:  r.LightingContribution,
		AmountToPay:           r.AmountToPay,
		DownloadURL:           r.DownloadURL,
	}
}
