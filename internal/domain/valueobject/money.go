package valueobject

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/energy-invoices-api/internal/domain"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Money valor monetario inmutable (punto fijo sobre decimal.Decimal).
type Money struct {
	amount decimal.Decimal
}

// FromLocaleString interpreta texto en formato brasileño: '.' separa miles y ',' decimales.
// "1.234,56" → 1234.56. Texto no numérico o en notación científica devuelve ErrInvalidMoney.
func FromLocaleString(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	normalized := strings.Replace(strings.ReplaceAll(raw, ".", ""), ",", ".", 1)
	if normalized == "" || strings.ContainsAny(normalized, "eE") {
		return Money{}, fmt.Errorf("%w: %q", domain.ErrInvalidMoney, s)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", domain.ErrInvalidMoney, s)
	}
	return Money{amount: d}, nil
}

// FromNumber usa el número tal cual. NaN e ±Inf devuelven ErrInvalidMoney.
func FromNumber(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("%w: %v", domain.ErrInvalidMoney, f)
	}
	return Money{amount: decimal.NewFromFloat(f)}, nil
}

// FromDecimal envuelve un decimal (columnas NUMERIC).
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// Add devuelve la suma sin modificar los operandos.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Format dos decimales con ',' como separador y sin agrupar miles: 1234.5 → "1234,50".
func (m Money) Format() string {
	return strings.Replace(m.amount.StringFixed(2), ".", ",", 1)
}

// FormatGrouped como Format pero con separador de miles pt-BR ("1.234,56"). Solo para mostrar.
// Los dígitos salen de StringFixed; la parte entera que no cabe en int64 queda sin agrupar.
func (m Money) FormatGrouped() string {
	rounded := m.amount.Round(2)
	intPart, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	head := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		head = ptBR.Sprintf("%d", n)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + head + "," + frac
}

// Value valor numérico crudo.
func (m Money) Value() float64 {
	return m.amount.InexactFloat64()
}

// Decimal valor exacto.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return m.Format()
}
