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

// TaxUseCase CRUD de impuestos. Un impuesto referenciado por variantes no
// se puede eliminar.
type TaxUseCase struct {
	taxRepo repository.TaxRepository
	clock   domain.Clock
}

// NewTaxUseCase construye el caso de uso.
func NewTaxUseCase(taxRepo repository.TaxRepository, clock domain.Clock) *TaxUseCase {
	return &TaxUseCase{taxRepo: taxRepo, clock: clock}
}

// Create persiste un impuesto nuevo con porcentaje entre 0 y 100.
func (uc *TaxUseCase) Create(_ context.Context, in dto.TaxRequest) (*dto.TaxResponse, error) {
	if err := validateTaxFields(in); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	tax := &entity.Tax{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Percentage: in.Percentage,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Active != nil {
		tax.Active = *in.Active
	}
	if err := uc.taxRepo.Create(tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// Get obtiene un impuesto por ID.
func (uc *TaxUseCase) Get(_ context.Context, id string) (*dto.TaxResponse, error) {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, domain.ErrNotFound
	}
	return toTaxResponse(tax), nil
}

// Update actualiza nombre, porcentaje y estado.
func (uc *TaxUseCase) Update(_ context.Context, id string, in dto.TaxRequest) (*dto.TaxResponse, error) {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateTaxFields(in); err != nil {
		return nil, err
	}

	tax.Name = in.Name
	tax.Percentage = in.Percentage
	if in.Active != nil {
		tax.Active = *in.Active
	}
	tax.UpdatedAt = uc.clock.Now()
	if err := uc.taxRepo.Update(tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// Delete elimina un impuesto no referenciado por variantes.
func (uc *TaxUseCase) Delete(_ context.Context, id string) error {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tax == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.taxRepo.InUse(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrTaxInUse
	}
	return uc.taxRepo.Delete(id)
}

// List lista impuestos.
func (uc *TaxUseCase) List(_ context.Context, activeOnly bool) ([]*dto.TaxResponse, error) {
	taxes, err := uc.taxRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TaxResponse, 0, len(taxes))
	for _, tax := range taxes {
		out = append(out, toTaxResponse(tax))
	}
	return out, nil
}

func validateTaxFields(in dto.TaxRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	if in.Percentage.LessThan(decimal.Zero) || in.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toTaxResponse(t *entity.Tax) *dto.TaxResponse {
	return &dto.TaxResponse{
		ID:         t.ID,
		Name:       t.Name,
		Percentage: t.Percentage,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
