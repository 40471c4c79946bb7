package usecase

import (
	"context"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
	"github.com/jhoicas/energy-invoices-api/internal/domain/valueobject"
)

// InvoiceUseCase casos de uso de lectura de facturas.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo}
}

// ListAll devuelve todas las facturas (lista vacía si no hay registros).
func (uc *InvoiceUseCase) ListAll(ctx context.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// FindByFilter filtra por cliente y/o mes de referencia. El request ya viene validado.
func (uc *InvoiceUseCase) FindByFilter(ctx context.Context, in dto.FilterInvoicesRequest) ([]dto.InvoiceResponse, error) {
	list, err := uc.repo.FindByFilters(ctx, toCriteria(in))
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

func toCriteria(in dto.FilterInvoicesRequest) repository.InvoiceFilterCriteria {
	var c repository.InvoiceFilterCriteria
	if in.CustomerNumber != nil {
		c.CustomerNumber = *in.CustomerNumber
	}
	if in.ReferenceMonth != nil {
		c.ReferenceMonth = *in.ReferenceMonth
	}
	return c
}

func toInvoiceResponses(list []*entity.Invoice) []dto.InvoiceResponse {
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvoiceResponse(inv))
	}
	return items
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		CustomerNumber:        inv.CustomerNumber(),
		ReferenceMonth:        inv.ReferenceMonth(),
		ElectricityKwh:        inv.ElectricityKwh(),
		ElectricityCost:       toMoneyResponse(inv.ElectricityCost()),
		SceeeEnergyKwh:        inv.SceeeEnergyKwh(),
		SceeeEnergyCost:       toMoneyResponse(inv.SceeeEnergyCost()),
		CompensatedEnergyKwh:  inv.CompensatedEnergyKwh(),
		CompensatedEnergyCost: toMoneyResponse(inv.CompensatedEnergyCost()),
		LightingContribution:  toMoneyResponse(inv.LightingContribution()),
		TotalCostWithoutGd:    toMoneyResponse(inv.TotalCostWithoutGd()),
		GdSavings:             toMoneyResponse(inv.GdSavings()),
		AmountToPay:           toMoneyResponse(inv.AmountToPay()),
		DownloadURL:           inv.DownloadURL(),
	}
}

func toMoneyResponse(m valueobject.Money) dto.MoneyResponse {
	return dto.MoneyResponse{Value: m.Decimal(), Formatted: m.Format()}
}
