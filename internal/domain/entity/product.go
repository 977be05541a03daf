package entity

import "time"

// Modos de venta de un producto. El modo es un clasificador inmutable:
// decide si el producto se maneja con variantes (unidad) o lotes de peso (kg).
const (
	SaleModeUnit   = "unit"
	SaleModeWeight = "weight"
)

// Product representa un producto del catálogo. Un producto "unit" posee
// variantes (SKUs); un producto "weight" posee lotes de peso. Nunca ambos.
type Product struct {
	ID          string
	Name        string
	Description string
	SaleMode    string // unit | weight
	CategoryID  string
	BrandID     string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSoldByUnit reporta si el producto se vende por unidad.
func (p *Product) IsSoldByUnit() bool { return p.SaleMode == SaleModeUnit }

// IsSoldByWeight reporta si el producto se vende por peso.
func (p *Product) IsSoldByWeight() bool { return p.SaleMode == SaleModeWeight }
