package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// BrandUseCase CRUD de marcas.
type BrandUseCase struct {
	brandRepo repository.BrandRepository
	clock     domain.Clock
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(brandRepo repository.BrandRepository, clock domain.Clock) *BrandUseCase {
	return &BrandUseCase{brandRepo: brandRepo, clock: clock}
}

// Create persiste una marca nueva.
func (uc *BrandUseCase) Create(_ context.Context, in dto.NamedRequest) (*dto.NamedResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Active != nil {
		brand.Active = *in.Active
	}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brandResponse(brand), nil
}

// Get obtiene una marca por ID.
func (uc *BrandUseCase) Get(_ context.Context, id string) (*dto.NamedResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	return brandResponse(brand), nil
}

// Update actualiza nombre y estado.
func (uc *BrandUseCase) Update(_ context.Context, id string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	brand.Name = in.Name
	if in.Active != nil {
		brand.Active = *in.Active
	}
	brand.UpdatedAt = uc.clock.Now()
	if err := uc.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brandResponse(brand), nil
}

// Delete elimina una marca sin productos.
func (uc *BrandUseCase) Delete(_ context.Context, id string) error {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	hasProducts, err := uc.brandRepo.HasProducts(id)
	if err != nil {
		return err
	}
	if hasProducts {
		return domain.ErrConflict
	}
	return uc.brandRepo.Delete(id)
}

// List lista marcas.
func (uc *BrandUseCase) List(_ context.Context, activeOnly bool) ([]*dto.NamedResponse, error) {
	brands, err := uc.brandRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NamedResponse, 0, len(brands))
	for _, brand := range brands {
		out = append(out, brandResponse(brand))
	}
	return out, nil
}

func brandResponse(b *entity.Brand) *dto.NamedResponse {
	return &dto.NamedResponse{ID: b.ID, Name: b.Name, Active: b.Active, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}
