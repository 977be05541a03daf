package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	SaleMode   string // unit | weight | "" (todos)
	CategoryID string
	BrandID    string
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(filter ProductFilter) ([]*entity.Product, error)
	HasChildren(id string) (bool, error)
}
