package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	clock        domain.Clock
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, clock domain.Clock) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, clock: clock}
}

// Create persiste una categoría nueva.
func (uc *CategoryUseCase) Create(_ context.Context, in dto.NamedRequest) (*dto.NamedResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Active != nil {
		category.Active = *in.Active
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return categoryResponse(category), nil
}

// Get obtiene una categoría por ID.
func (uc *CategoryUseCase) Get(_ context.Context, id string) (*dto.NamedResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return categoryResponse(category), nil
}

// Update actualiza nombre y estado.
func (uc *CategoryUseCase) Update(_ context.Context, id string, in dto.NamedRequest) (*dto.NamedResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category.Name = in.Name
	if in.Active != nil {
		category.Active = *in.Active
	}
	category.UpdatedAt = uc.clock.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return categoryResponse(category), nil
}

// Delete elimina una categoría sin productos.
func (uc *CategoryUseCase) Delete(_ context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	hasProducts, err := uc.categoryRepo.HasProducts(id)
	if err != nil {
		return err
	}
	if hasProducts {
		return domain.ErrConflict
	}
	return uc.categoryRepo.Delete(id)
}

// List lista categorías.
func (uc *CategoryUseCase) List(_ context.Context, activeOnly bool) ([]*dto.NamedResponse, error) {
	categories, err := uc.categoryRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NamedResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryResponse(category))
	}
	return out, nil
}

func categoryResponse(c *entity.Category) *dto.NamedResponse {
	return &dto.NamedResponse{ID: c.ID, Name: c.Name, Active: c.Active, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}
