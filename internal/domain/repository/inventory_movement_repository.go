package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// MovementFilter filtros de consulta del diario de movimientos.
type MovementFilter struct {
	Type   string // in | out | adjustment | "" (todos)
	UserID string
	Item   *entity.ItemRef
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// InventoryMovementRepository define el puerto de persistencia del diario.
// El diario es de solo inserción: no existe Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	List(filter MovementFilter) ([]*entity.InventoryMovement, error)
}
