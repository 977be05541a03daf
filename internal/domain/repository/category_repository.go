package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	List(activeOnly bool) ([]*entity.Category, error)
	HasProducts(id string) (bool, error)
}
