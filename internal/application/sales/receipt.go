package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptLine línea del comprobante con la descripción ya resuelta.
type ReceiptLine struct {
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptData datos listos para render del comprobante de venta.
type ReceiptData struct {
	Sale        *entity.Sale
	Lines       []ReceiptLine
	CashierName string
	StoreName   string
}

// ReceiptUseCase arma los datos del comprobante de una venta y delega el
// render al generador PDF.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	variantRepo repository.ProductVariantRepository
	lotRepo     repository.WeightLotRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	generator   ReceiptGenerator
	storeName   string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	variantRepo repository.ProductVariantRepository,
	lotRepo repository.WeightLotRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	generator ReceiptGenerator,
	storeName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		variantRepo: variantRepo,
		lotRepo:     lotRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		generator:   generator,
		storeName:   storeName,
	}
}

// GenerateReceipt genera el PDF del comprobante de la venta indicada.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}

	data := &ReceiptData{
		Sale:      sale,
		StoreName: uc.storeName,
		Lines:     make([]ReceiptLine, 0, len(items)),
	}
	if user, err := uc.userRepo.GetByID(sale.UserID); err == nil && user != nil {
		data.CashierName = user.Name
	}

	for _, item := range items {
		data.Lines = append(data.Lines, ReceiptLine{
			Description: uc.describeItem(item.Item),
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		})
	}
	return uc.generator.GenerateReceiptPDF(ctx, data)
}

// describeItem resuelve una descripción legible para la línea. Si el ítem ya
// no existe en el catálogo, cae en el identificador crudo: el comprobante
// siempre se puede regenerar.
func (uc *ReceiptUseCase) describeItem(ref entity.ItemRef) string {
	switch ref.Kind {
	case entity.ItemKindVariant:
		variant, err := uc.variantRepo.GetByID(ref.ID)
		if err != nil || variant == nil {
			break
		}
		if product, err := uc.productRepo.GetByID(variant.ProductID); err == nil && product != nil {
			return fmt.Sprintf("%s %s", product.Name, variant.Presentation)
		}
		return variant.Presentation
	case entity.ItemKindWeightLot:
		lot, err := uc.lotRepo.GetByID(ref.ID)
		if err != nil || lot == nil {
			break
		}
		if product, err := uc.productRepo.GetByID(lot.ProductID); err == nil && product != nil {
			return fmt.Sprintf("%s (kg)", product.Name)
		}
	}
	return ref.String()
}
