package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// LotFilter filtros de listado de lotes de peso. Los predicados de
// vencimiento se evalúan contra Now (inyectado por el caso de uso).
type LotFilter struct {
	ProductID     string
	ActiveOnly    bool
	AvailableOnly bool
	ExpiredOnly   bool
	ExpiringSoon  bool // vence dentro de los próximos 7 días
	Now           time.Time
	Limit         int
	Offset        int
}

// WeightLotRepository define el puerto de persistencia para lotes de peso.
type WeightLotRepository interface {
	Create(lot *entity.WeightLot) error
	GetByID(id string) (*entity.WeightLot, error)
	GetForUpdate(id string) (*entity.WeightLot, error)
	Update(lot *entity.WeightLot) error
	// UpdateWeights escribe los contadores de peso y el flag activo;
	// reservado al motor de inventario y al motor de ventas.
	UpdateWeights(id string, initial, available decimal.Decimal, active bool) error
	Delete(id string) error
	List(filter LotFilter) ([]*entity.WeightLot, error)
	HasSaleItems(id string) (bool, error)
	HasMovements(id string) (bool, error)
}
