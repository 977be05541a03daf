package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo. El modo de venta se fija al
// crear y no cambia: decide si el producto lleva variantes o lotes de peso.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	clock        domain.Clock
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	clock domain.Clock,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, brandRepo: brandRepo, clock: clock}
}

// Create valida referencias y persiste un producto nuevo.
func (uc *ProductUseCase) Create(_ context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.BrandID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleMode != entity.SaleModeUnit && in.SaleMode != entity.SaleModeWeight {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	brand, err := uc.brandRepo.GetByID(in.BrandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clock.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		SaleMode:    in.SaleMode,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(_ context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos editables. SaleMode nunca cambia.
func (uc *ProductUseCase) Update(_ context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.CategoryID == "" || in.BrandID == "" {
		return nil, domain.ErrInvalidInput
	}

	product.Name = in.Name
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	product.BrandID = in.BrandID
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = uc.clock.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto sin variantes ni lotes.
func (uc *ProductUseCase) Delete(_ context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	hasChildren, err := uc.productRepo.HasChildren(id)
	if err != nil {
		return err
	}
	if hasChildren {
		return domain.ErrConflict
	}
	return uc.productRepo.Delete(id)
}

// List lista productos con filtros. El término de búsqueda se normaliza
// (minúsculas, sin tildes) antes de consultar.
func (uc *ProductUseCase) List(_ context.Context, filter repository.ProductFilter) ([]*dto.ProductResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	filter.Search = NormalizeSearch(filter.Search)
	products, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SaleMode:    p.SaleMode,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
