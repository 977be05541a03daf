package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// WeightLotUseCase CRUD de lotes de peso. Solo se crean bajo productos de
// modo "weight"; los contadores de peso son del ledger y del motor de ventas.
type WeightLotUseCase struct {
	lotRepo     repository.WeightLotRepository
	productRepo repository.ProductRepository
	clock       domain.Clock
}

// NewWeightLotUseCase construye el caso de uso.
func NewWeightLotUseCase(lotRepo repository.WeightLotRepository, productRepo repository.ProductRepository, clock domain.Clock) *WeightLotUseCase {
	return &WeightLotUseCase{lotRepo: lotRepo, productRepo: productRepo, clock: clock}
}

// Create valida el modo de venta del producto padre y persiste el lote.
// El peso disponible arranca igual al inicial.
func (uc *WeightLotUseCase) Create(_ context.Context, in dto.CreateWeightLotRequest) (*dto.WeightLotResponse, error) {
	if in.ProductID == "" || !in.InitialWeight.GreaterThan(decimal.Zero) || !in.PricePerKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsSoldByWeight() {
		return nil, domain.ErrInvalidProductType
	}

	now := uc.clock.Now()
	lot := &entity.WeightLot{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		InitialWeight:   in.InitialWeight.Round(3),
		AvailableWeight: in.InitialWeight.Round(3),
		PricePerKg:      in.PricePerKg.Round(2),
		ExpiresAt:       in.ExpiresAt,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.lotRepo.Create(lot); err != nil {
		return nil, err
	}
	return uc.toLotResponse(lot), nil
}

// Get obtiene un lote por ID.
func (uc *WeightLotUseCase) Get(_ context.Context, id string) (*dto.WeightLotResponse, error) {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toLotResponse(lot), nil
}

// Update actualiza precio, vencimiento y flag activo. Los pesos no entran
// por aquí.
func (uc *WeightLotUseCase) Update(_ context.Context, id string, in dto.UpdateWeightLotRequest) (*dto.WeightLotResponse, error) {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if !in.PricePerKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	lot.PricePerKg = in.PricePerKg.Round(2)
	lot.ExpiresAt = in.ExpiresAt
	if in.Active != nil {
		// Reactivar un lote sin peso disponible no tiene sentido.
		if *in.Active && !lot.HasAvailableWeight() {
			return nil, domain.ErrConflict
		}
		lot.Active = *in.Active
	}
	lot.UpdatedAt = uc.clock.Now()
	if err := uc.lotRepo.Update(lot); err != nil {
		return nil, err
	}
	return uc.toLotResponse(lot), nil
}

// Delete elimina un lote sin ventas ni movimientos asociados.
func (uc *WeightLotUseCase) Delete(_ context.Context, id string) error {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	if has, err := uc.lotRepo.HasSaleItems(id); err != nil {
		return err
	} else if has {
		return domain.ErrHasSales
	}
	if has, err := uc.lotRepo.HasMovements(id); err != nil {
		return err
	} else if has {
		return domain.ErrHasMovements
	}
	return uc.lotRepo.Delete(id)
}

// List lista lotes; los predicados de vencimiento se evalúan con el reloj
// inyectado.
func (uc *WeightLotUseCase) List(_ context.Context, filter repository.LotFilter) ([]*dto.WeightLotResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	filter.Now = uc.clock.Now()
	lots, err := uc.lotRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WeightLotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, uc.toLotResponse(lot))
	}
	return out, nil
}

func (uc *WeightLotUseCase) toLotResponse(l *entity.WeightLot) *dto.WeightLotResponse {
	return &dto.WeightLotResponse{
		ID:              l.ID,
		ProductID:       l.ProductID,
		InitialWeight:   l.InitialWeight,
		AvailableWeight: l.AvailableWeight,
		SoldWeight:      l.SoldWeight(),
		PricePerKg:      l.PricePerKg,
		ExpiresAt:       l.ExpiresAt,
		Active:          l.Active,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
