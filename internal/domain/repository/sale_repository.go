package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleFilter filtros de consulta de ventas.
type SaleFilter struct {
	Channel string // store | online | "" (todos)
	UserID  string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// SaleRepository define el puerto de persistencia para ventas.
// Las ventas son registros financieros inmutables: no existe Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItems(items []*entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}
