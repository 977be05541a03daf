package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// VariantFilter filtros de listado de variantes.
type VariantFilter struct {
	ProductID      string
	LowStockOnly   bool
	OutOfStockOnly bool
	InStockOnly    bool
	OnSaleOnly     bool
	Search         string // contra presentation y sku
	Limit          int
	Offset         int
}

// ProductVariantRepository define el puerto de persistencia para variantes.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usarlo dentro de la
// transacción del motor de inventario o de ventas antes de leer-verificar-escribir.
type ProductVariantRepository interface {
	Create(variant *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	GetForUpdate(id string) (*entity.ProductVariant, error)
	Update(variant *entity.ProductVariant) error
	// UpdateStock escribe solo el contador de stock; reservado al motor
	// de inventario y al motor de ventas.
	UpdateStock(id string, stock int64) error
	Delete(id string) error
	List(filter VariantFilter) ([]*entity.ProductVariant, error)
	HasSaleItems(id string) (bool, error)
	HasMovements(id string) (bool, error)
}
