package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// TaxRepository define el puerto de persistencia para impuestos.
type TaxRepository interface {
	Create(tax *entity.Tax) error
	GetByID(id string) (*entity.Tax, error)
	Update(tax *entity.Tax) error
	Delete(id string) error
	List(activeOnly bool) ([]*entity.Tax, error)
	// InUse reporta si alguna variante referencia el impuesto.
	InUse(id string) (bool, error)
}
