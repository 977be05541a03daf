package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax es un impuesto porcentual (0–100) aplicable a variantes.
// No se puede eliminar mientras haya variantes que lo referencien.
type Tax struct {
	ID         string
	Name       string
	Percentage decimal.Decimal // 0–100
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TaxAmount calcula el impuesto sobre un monto, redondeado a 2 decimales.
func (t *Tax) TaxAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(t.Percentage).Div(decimal.NewFromInt(100)).Round(2)
}

// PriceWithTax calcula el monto con impuesto incluido, redondeado a 2 decimales.
func (t *Tax) PriceWithTax(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(t.TaxAmount(amount)).Round(2)
}
