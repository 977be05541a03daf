package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de una venta dentro de una transacción de BD,
// pasando repositorios atados a esa tx. Todas las líneas del carrito se
// reservan y persisten de forma atómica: si una falla, ninguna sobrevive.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		variantRepo repository.ProductVariantRepository,
		lotRepo repository.WeightLotRepository,
		taxRepo repository.TaxRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator genera el PDF del comprobante de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data *ReceiptData) ([]byte, error)
}
