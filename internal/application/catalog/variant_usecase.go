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

// VariantUseCase CRUD de variantes (SKUs por unidad). Solo se crean bajo
// productos de modo "unit"; el stock se fija al crear y después solo lo
// mutan el ledger y el motor de ventas.
type VariantUseCase struct {
	variantRepo repository.ProductVariantRepository
	productRepo repository.ProductRepository
	taxRepo     repository.TaxRepository
	clock       domain.Clock
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(
	variantRepo repository.ProductVariantRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	clock domain.Clock,
) *VariantUseCase {
	return &VariantUseCase{variantRepo: variantRepo, productRepo: productRepo, taxRepo: taxRepo, clock: clock}
}

// Create valida el modo de venta del producto padre y persiste la variante.
func (uc *VariantUseCase) Create(_ context.Context, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if err := validateVariantFields(in.Presentation, in.Price, in.SalePrice, in.MinStock, in.TaxID); err != nil {
		return nil, err
	}
	if in.ProductID == "" || in.SKU == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsSoldByUnit() {
		return nil, domain.ErrInvalidProductType
	}
	tax, err := uc.taxRepo.GetByID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clock.Now()
	variant := &entity.ProductVariant{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Presentation: in.Presentation,
		SKU:          in.SKU,
		Barcode:      in.Barcode,
		Price:        in.Price,
		SalePrice:    in.SalePrice,
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		TaxID:        in.TaxID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// Get obtiene una variante por ID.
func (uc *VariantUseCase) Get(_ context.Context, id string) (*dto.VariantResponse, error) {
	variant, err := uc.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return toVariantResponse(variant), nil
}

// Update actualiza los campos editables de la variante. El stock no entra
// por aquí: las cantidades son del ledger.
func (uc *VariantUseCase) Update(_ context.Context, id string, in dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	variant, err := uc.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateVariantFields(in.Presentation, in.Price, in.SalePrice, in.MinStock, in.TaxID); err != nil {
		return nil, err
	}
	tax, err := uc.taxRepo.GetByID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, domain.ErrNotFound
	}

	variant.Presentation = in.Presentation
	variant.Barcode = in.Barcode
	variant.Price = in.Price
	variant.SalePrice = in.SalePrice
	variant.MinStock = in.MinStock
	variant.TaxID = in.TaxID
	variant.UpdatedAt = uc.clock.Now()
	if err := uc.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// Delete elimina una variante sin ventas ni movimientos asociados.
func (uc *VariantUseCase) Delete(_ context.Context, id string) error {
	variant, err := uc.variantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	if has, err := uc.variantRepo.HasSaleItems(id); err != nil {
		return err
	} else if has {
		return domain.ErrHasSales
	}
	if has, err := uc.variantRepo.HasMovements(id); err != nil {
		return err
	} else if has {
		return domain.ErrHasMovements
	}
	return uc.variantRepo.Delete(id)
}

// List lista variantes con predicados de stock y búsqueda normalizada.
func (uc *VariantUseCase) List(_ context.Context, filter repository.VariantFilter) ([]*dto.VariantResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	filter.Search = NormalizeSearch(filter.Search)
	variants, err := uc.variantRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VariantResponse, 0, len(variants))
	for _, variant := range variants {
		out = append(out, toVariantResponse(variant))
	}
	return out, nil
}

// validateVariantFields reglas compartidas entre crear y actualizar:
// sale_price, si existe, debe ser menor al precio regular.
func validateVariantFields(presentation string, price decimal.Decimal, salePrice *decimal.Decimal, minStock int64, taxID string) error {
	if presentation == "" || taxID == "" || minStock < 0 {
		return domain.ErrInvalidInput
	}
	if !price.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if salePrice != nil && !salePrice.LessThan(price) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toVariantResponse(v *entity.ProductVariant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		Presentation: v.Presentation,
		SKU:          v.SKU,
		Barcode:      v.Barcode,
		Price:        v.Price,
		SalePrice:    v.SalePrice,
		Stock:        v.Stock,
		MinStock:     v.MinStock,
		TaxID:        v.TaxID,
		LowStock:     v.HasLowStock(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
