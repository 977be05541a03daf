package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant es un SKU vendido por unidad (ej: "botella 500 ml").
// Stock y MinStock son enteros; el stock nunca baja de cero y solo lo
// mutan el motor de inventario y el motor de ventas.
type ProductVariant struct {
	ID           string
	ProductID    string
	Presentation string           // 500 g, 1 kg, 1 L
	SKU          string           // único
	Barcode      *string          // único, opcional
	Price        decimal.Decimal
	SalePrice    *decimal.Decimal // oferta; debe ser menor a Price
	Stock        int64
	MinStock     int64
	TaxID        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FinalPrice devuelve el precio de oferta si existe, si no el precio regular.
func (v *ProductVariant) FinalPrice() decimal.Decimal {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

// HasLowStock reporta si el stock está en o por debajo del mínimo.
func (v *ProductVariant) HasLowStock() bool { return v.Stock <= v.MinStock }

// IsInStock reporta si hay unidades disponibles.
func (v *ProductVariant) IsInStock() bool { return v.Stock > 0 }
