package entity

import (
	"fmt"

	"github.com/jhoicas/energy-invoices-api/internal/domain/valueobject"
)

// Invoice factura de energía de un cliente para un mes de referencia (YYYY-MM).
// Inmutable: solo se construye con NewInvoice/NewInvoiceFromRaw y se lee con los accessors.
type Invoice struct {
	customerNumber        string
	referenceMonth        string
	electricityKwh        string
	electricityCost       valueobject.Money
	sceeeEnergyKwh        string
	sceeeEnergyCost       valueobject.Money
	compensatedEnergyKwh  string
	compensatedEnergyCost valueobject.Money
	lightingContribution  valueobject.Money
	totalCostWithoutGd    valueobject.Money
	gdSavings             valueobject.Money
	amountToPay           valueobject.Money
	downloadURL           string
}

// InvoiceParams todos los campos persistidos excepto los dos derivados.
type InvoiceParams struct {
	CustomerNumber        string
	ReferenceMonth        string
	ElectricityKwh        string
	ElectricityCost       valueobject.Money
	SceeeEnergyKwh        string
	SceeeEnergyCost       valueobject.Money
	CompensatedEnergyKwh  string
	CompensatedEnergyCost valueobject.Money
	LightingContribution  valueobject.Money
	AmountToPay           valueobject.Money
	DownloadURL           string // opcional
}

// RawInvoice igual que InvoiceParams pero con los montos como texto pt-BR ("1.234,56").
type RawInvoice struct {
	CustomerNumber        string
	ReferenceMonth        string
	ElectricityKwh        string
	ElectricityCost       string
	SceeeEnergyKwh        string
	SceeeEnergyCost       string
	CompensatedEnergyKwh  string
	CompensatedEnergyCost string
	LightingContribution  string
	AmountToPay           string
	DownloadURL           string
}

// NewInvoice construye la factura derivando:
//
//	totalCostWithoutGd = electricityCost + sceeeEnergyCost + lightingContribution
//	gdSavings          = compensatedEnergyCost
//
// No valida rangos ni el formato del mes; eso ocurre en la capa de request.
func NewInvoice(p InvoiceParams) *Invoice {
	return &Invoice{
		customerNumber:        p.CustomerNumber,
		referenceMonth:        p.ReferenceMonth,
		electricityKwh:        p.ElectricityKwh,
		electricityCost:       p.ElectricityCost,
		sceeeEnergyKwh:        p.SceeeEnergyKwh,
		sceeeEnergyCost:       p.SceeeEnergyCost,
		compensatedEnergyKwh:  p.CompensatedEnergyKwh,
		compensatedEnergyCost: p.CompensatedEnergyCost,
		lightingContribution:  p.LightingContribution,
		totalCostWithoutGd:    p.ElectricityCost.Add(p.SceeeEnergyCost).Add(p.LightingContribution),
		// TODO: confirmar con facturación si el ahorro GD tendrá fórmula propia; hoy es el costo compensado.
		gdSavings:   p.CompensatedEnergyCost,
		amountToPay: p.AmountToPay,
		downloadURL: p.DownloadURL,
	}
}

// NewInvoiceFromRaw interpreta los montos en texto y delega en NewInvoice.
// El error indica el campo que no se pudo leer y envuelve domain.ErrInvalidMoney.
func NewInvoiceFromRaw(r RawInvoice) (*Invoice, error) {
	fields := []struct {
		name string
		raw  string
		dst  *valueobject.Money
	}{
		{"electricityCost", r.ElectricityCost, new(valueobject.Money)},
		{"sceeeEnergyCost", r.SceeeEnergyCost, new(valueobject.Money)},
		{"compensatedEnergyCost", r.CompensatedEnergyCost, new(valueobject.Money)},
		{"lightingContribution", r.LightingContribution, new(valueobject.Money)},
		{"amountToPay", r.AmountToPay, new(valueobject.Money)},
	}
	for _, f := range fields {
		m, err := valueobject.FromLocaleString(f.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = m
	}
	return NewInvoice(InvoiceParams{
		CustomerNumber:        r.CustomerNumber,
		ReferenceMonth:        r.ReferenceMonth,
		ElectricityKwh:        r.ElectricityKwh,
		ElectricityCost:       *fields[0].dst,
		SceeeEnergyKwh:        r.SceeeEnergyKwh,
		SceeeEnergyCost:       *fields[1].dst,
		CompensatedEnergyKwh:  r.CompensatedEnergyKwh,
		CompensatedEnergyCost: *fields[2].dst,
		LightingContribution:  *fields[3].dst,
		AmountToPay:           *fields[4].dst,
		DownloadURL:           r.DownloadURL,
	}), nil
}

func (i *Invoice) CustomerNumber() string                   { return i.customerNumber }
func (i *Invoice) ReferenceMonth() string                   { return i.referenceMonth }
func (i *Invoice) ElectricityKwh() string                   { return i.electricityKwh }
func (i *Invoice) ElectricityCost() valueobject.Money       { return i.electricityCost }
func (i *Invoice) SceeeEnergyKwh() string                   { return i.sceeeEnergyKwh }
func (i *Invoice) SceeeEnergyCost() valueobject.Money       { return i.sceeeEnergyCost }
func (i *Invoice) CompensatedEnergyKwh() string             { return i.compensatedEnergyKwh }
func (i *Invoice) CompensatedEnergyCost() valueobject.Money { return i.compensatedEnergyCost }
func (i *Invoice) LightingContribution() valueobject.Money  { return i.lightingContribution }
func (i *Invoice) TotalCostWithoutGd() valueobject.Money    { return i.totalCostWithoutGd }
func (i *Invoice) GdSavings() valueobject.Money             { return i.gdSavings }
func (i *Invoice) AmountToPay() valueobject.Money           { return i.amountToPay }

// DownloadURL enlace al PDF original de la distribuidora; "" si no existe.
func (i *Invoice) DownloadURL() string { return i.downloadURL }
