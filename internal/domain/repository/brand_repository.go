package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// BrandRepository define el puerto de persistencia para marcas.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	Delete(id string) error
	List(activeOnly bool) ([]*entity.Brand, error)
	HasProducts(id string) (bool, error)
}
