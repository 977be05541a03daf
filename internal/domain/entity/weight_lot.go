package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightLot es un lote de producto vendido por peso (carnicería): una masa
// finita en kg con precisión de 3 decimales. Invariantes:
// 0 <= AvailableWeight <= InitialWeight; al llegar a 0 el lote se desactiva.
type WeightLot struct {
	ID              string
	ProductID       string
	InitialWeight   decimal.Decimal // kg, 3 decimales
	AvailableWeight decimal.Decimal // kg, 3 decimales
	PricePerKg      decimal.Decimal
	ExpiresAt       *time.Time // fecha de vencimiento, opcional
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired reporta si el lote está vencido respecto al instante dado.
func (l *WeightLot) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// HasAvailableWeight reporta si queda peso por vender.
func (l *WeightLot) HasAvailableWeight() bool {
	return l.AvailableWeight.GreaterThan(decimal.Zero)
}

// SoldWeight devuelve el peso ya vendido del lote.
func (l *WeightLot) SoldWeight() decimal.Decimal {
	return l.InitialWeight.Sub(l.AvailableWeight)
}
