package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemInput una línea del carrito.
type SaleItemInput struct {
	Kind     string          `json:"kind"` // variant | weight_lot
	ID       string          `json:"id"`
	Quantity decimal.Decimal `json:"quantity"` // entera para variantes, kg con 3 decimales para lotes
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Channel string          `json:"channel"` // store | online
	Items   []SaleItemInput `json:"items"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID       string          `json:"id"`
	ItemKind string          `json:"item_kind"`
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con sus líneas y totales.
type SaleResponse struct {
	ID        string             `json:"id"`
	Channel   string             `json:"channel"`
	UserID    string             `json:"user_id"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	TaxTotal  decimal.Decimal    `json:"tax_total"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []SaleItemResponse `json:"items"`
}

// SaleListQuery filtros para GET /api/sales.
type SaleListQuery struct {
	Channel string `query:"channel"`
	UserID  string `query:"user_id"`
	Date    string `query:"date"`
	StartAt string `query:"start_date"`
	EndAt   string `query:"end_date"`
	Today   bool   `query:"today"`
	PageRequest
}
