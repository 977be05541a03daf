package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProductRequest body para POST /api/products. SaleMode es inmutable
// después de creado.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SaleMode    string `json:"sale_mode"` // unit | weight
	CategoryID  string `json:"category_id"`
	BrandID     string `json:"brand_id"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye SaleMode.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id"`
	BrandID     string `json:"brand_id"`
	Active      *bool  `json:"active,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SaleMode    string    `json:"sale_mode"`
	CategoryID  string    `json:"category_id"`
	BrandID     string    `json:"brand_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Variantes ─────────────────────────────────────────────────────────────────

// CreateVariantRequest body para POST /api/variants. El producto debe ser
// de modo "unit". Stock inicial entra por aquí; después solo lo muta el ledger.
type CreateVariantRequest struct {
	ProductID    string           `json:"product_id"`
	Presentation string           `json:"presentation"`
	SKU          string           `json:"sku"`
	Barcode      *string          `json:"barcode,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Stock        int64            `json:"stock"`
	MinStock     int64            `json:"min_stock"`
	TaxID        string           `json:"tax_id"`
}

// UpdateVariantRequest body para PUT /api/variants/:id. No incluye Stock:
// las cantidades solo se mutan vía movimientos y ventas.
type UpdateVariantRequest struct {
	Presentation string           `json:"presentation"`
	Barcode      *string          `json:"barcode,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	MinStock     int64            `json:"min_stock"`
	TaxID        string           `json:"tax_id"`
}

// VariantResponse representación de una variante.
type VariantResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	Presentation string           `json:"presentation"`
	SKU          string           `json:"sku"`
	Barcode      *string          `json:"barcode,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Stock        int64            `json:"stock"`
	MinStock     int64            `json:"min_stock"`
	TaxID        string           `json:"tax_id"`
	LowStock     bool             `json:"low_stock"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ── Lotes de peso ─────────────────────────────────────────────────────────────

// CreateWeightLotRequest body para POST /api/weight-lots. El producto debe
// ser de modo "weight". AvailableWeight arranca igual a InitialWeight.
type CreateWeightLotRequest struct {
	ProductID     string          `json:"product_id"`
	InitialWeight decimal.Decimal `json:"initial_weight"` // kg
	PricePerKg    decimal.Decimal `json:"price_per_kg"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
}

// UpdateWeightLotRequest body para PUT /api/weight-lots/:id. No incluye los
// contadores de peso.
type UpdateWeightLotRequest struct {
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	Active     *bool           `json:"active,omitempty"`
}

// WeightLotResponse representación de un lote.
type WeightLotResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	InitialWeight   decimal.Decimal `json:"initial_weight"`
	AvailableWeight decimal.Decimal `json:"available_weight"`
	SoldWeight      decimal.Decimal `json:"sold_weight"`
	PricePerKg      decimal.Decimal `json:"price_per_kg"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ── Impuestos ─────────────────────────────────────────────────────────────────

// TaxRequest body para crear/actualizar impuestos.
type TaxRequest struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"` // 0–100
	Active     *bool           `json:"active,omitempty"`
}

// TaxResponse representación de un impuesto.
type TaxResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ── Categorías y marcas ───────────────────────────────────────────────────────

// NamedRequest body genérico para categorías y marcas.
type NamedRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// NamedResponse representación de categoría o marca.
type NamedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
