package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste (delta, puede ser negativo)
)

// ValidMovementType reporta si el tipo es uno de los soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// InventoryMovement es un registro del diario de inventario: cada cambio de
// stock o peso queda asentado aquí. Los movimientos son inmutables: no existe
// actualización y el borrado se rechaza siempre.
type InventoryMovement struct {
	ID        string
	Item      ItemRef
	Type      string          // in | out | adjustment
	Quantity  decimal.Decimal // > 0 para in/out; delta con signo para adjustment
	UserID    string
	Note      string
	CreatedAt time.Time
}

// IsIn reporta si el movimiento es una entrada.
func (m *InventoryMovement) IsIn() bool { return m.Type == MovementTypeIn }

// IsOut reporta si el movimiento es una salida.
func (m *InventoryMovement) IsOut() bool { return m.Type == MovementTypeOut }

// IsAdjustment reporta si el movimiento es un ajuste.
func (m *InventoryMovement) IsAdjustment() bool { return m.Type == MovementTypeAdjustment }
