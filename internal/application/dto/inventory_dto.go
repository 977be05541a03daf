package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity > 0 para in/out; delta con signo para adjustment.
type RegisterMovementRequest struct {
	ItemKind string          `json:"item_kind"` // variant | weight_lot
	ItemID   string          `json:"item_id"`
	Type     string          `json:"type"` // in | out | adjustment
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// ReduceWeightRequest body para POST /api/weight-lots/:id/reduce-weight.
type ReduceWeightRequest struct {
	Weight decimal.Decimal `json:"weight"`
}

// MovementResponse representación de un movimiento del diario.
type MovementResponse struct {
	ID        string          `json:"id"`
	ItemKind  string          `json:"item_kind"`
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UserID    string          `json:"user_id"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// MovementListQuery filtros para GET /api/inventory/movements.
type MovementListQuery struct {
	Type     string `query:"type"`
	UserID   string `query:"user_id"`
	ItemKind string `query:"item_kind"`
	ItemID   string `query:"item_id"`
	Date     string `query:"date"`       // YYYY-MM-DD
	StartAt  string `query:"start_date"` // YYYY-MM-DD
	EndAt    string `query:"end_date"`   // YYYY-MM-DD
	Today    bool   `query:"today"`
	PageRequest
}
