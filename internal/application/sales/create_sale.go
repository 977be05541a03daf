package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Config parámetros del motor de ventas. WeightTaxPercent es la tasa plana
// aplicada a líneas de peso (el catálogo no asocia impuesto a lotes).
type Config struct {
	WeightTaxPercent decimal.Decimal // ej: 5 para 5%
}

// CreateSaleUseCase convierte un carrito heterogéneo (variantes y lotes de
// peso) en una venta comprometida, con stock/peso reservados de forma
// atómica en una sola transacción con bloqueo de fila por ítem.
type CreateSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository // atado al pool, solo lecturas
	clock    domain.Clock
	cfg      Config
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, clock domain.Clock, cfg Config) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, saleRepo: saleRepo, clock: clock, cfg: cfg}
}

// CreateSale procesa cada línea en orden de entrada: verifica disponibilidad,
// calcula subtotal e impuesto y descuenta stock/peso bajo bloqueo de fila.
// Luego persiste la venta y sus líneas. Si cualquier línea falla, toda la
// transacción se revierte: no quedan descuentos parciales ni filas de venta.
// Las ventas no asientan movimientos de inventario; su rastro son las líneas.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleInput(userID, in); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		Channel:   in.Channel,
		UserID:    userID,
		CreatedAt: now,
	}
	var items []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		variantRepo repository.ProductVariantRepository,
		lotRepo repository.WeightLotRepository,
		taxRepo repository.TaxRepository,
		saleRepo repository.SaleRepository,
	) error {
		subtotal := decimal.Zero
		taxTotal := decimal.Zero

		for _, line := range in.Items {
			var (
				item *entity.SaleItem
				tax  decimal.Decimal
				err  error
			)
			switch entity.ItemKind(line.Kind) {
			case entity.ItemKindVariant:
				item, tax, err = uc.processVariantLine(variantRepo, taxRepo, line)
			case entity.ItemKindWeightLot:
				item, tax, err = uc.processWeightLotLine(lotRepo, line)
			default:
				err = domain.ErrInvalidInput
			}
			if err != nil {
				return err
			}
			item.SaleID = sale.ID
			items = append(items, item)
			subtotal = subtotal.Add(item.Subtotal)
			taxTotal = taxTotal.Add(tax)
		}

		sale.Subtotal = subtotal.Round(2)
		sale.TaxTotal = taxTotal.Round(2)
		sale.Total = sale.Subtotal.Add(sale.TaxTotal)

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		return saleRepo.CreateItems(items)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

func validateSaleInput(userID string, in dto.CreateSaleRequest) error {
	if userID == "" || !entity.ValidChannel(in.Channel) || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		kind := entity.ItemKind(line.Kind)
		if !kind.Valid() {
			return domain.ErrInvalidInput
		}
		// Las variantes se venden en unidades enteras.
		if kind == entity.ItemKindVariant && !line.Quantity.IsInteger() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// processVariantLine bloquea la variante, verifica stock, toma la foto del
// precio (oferta si existe), calcula el impuesto configurado en el catálogo
// y descuenta el stock.
func (uc *CreateSaleUseCase) processVariantLine(
	variantRepo repository.ProductVariantRepository,
	taxRepo repository.TaxRepository,
	line dto.SaleItemInput,
) (*entity.SaleItem, decimal.Decimal, error) {
	variant, err := variantRepo.GetForUpdate(line.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if variant == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}

	qty := line.Quantity.IntPart()
	if variant.Stock < qty {
		return nil, decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, variant.Presentation)
	}

	tax, err := taxRepo.GetByID(variant.TaxID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if tax == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}

	price := variant.FinalPrice()
	lineSubtotal := price.Mul(line.Quantity).Round(2)
	lineTax := tax.TaxAmount(lineSubtotal)

	if err := variantRepo.UpdateStock(variant.ID, variant.Stock-qty); err != nil {
		return nil, decimal.Zero, err
	}

	return &entity.SaleItem{
		ID:       uuid.New().String(),
		Item:     entity.ItemRef{Kind: entity.ItemKindVariant, ID: variant.ID},
		Quantity: line.Quantity,
		Price:    price,
		Subtotal: lineSubtotal,
	}, lineTax, nil
}

// processWeightLotLine bloquea el lote, verifica disponibilidad y estado,
// aplica la tasa plana configurada y descuenta el peso, desactivando el lote
// si queda en cero.
func (uc *CreateSaleUseCase) processWeightLotLine(
	lotRepo repository.WeightLotRepository,
	line dto.SaleItemInput,
) (*entity.SaleItem, decimal.Decimal, error) {
	lot, err := lotRepo.GetForUpdate(line.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if lot == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	if lot.AvailableWeight.LessThan(line.Quantity) {
		return nil, decimal.Zero, domain.ErrInsufficientWeight
	}
	if !lot.Active {
		return nil, decimal.Zero, domain.ErrInactiveLot
	}

	price := lot.PricePerKg
	lineSubtotal := price.Mul(line.Quantity).Round(2)
	lineTax := lineSubtotal.Mul(uc.cfg.WeightTaxPercent).Div(decimal.NewFromInt(100)).Round(2)

	available := lot.AvailableWeight.Sub(line.Quantity)
	active := lot.Active
	if available.LessThanOrEqual(decimal.Zero) {
		active = false
	}
	if err := lotRepo.UpdateWeights(lot.ID, lot.InitialWeight, available, active); err != nil {
		return nil, decimal.Zero, err
	}

	return &entity.SaleItem{
		ID:       uuid.New().String(),
		Item:     entity.ItemRef{Kind: entity.ItemKindWeightLot, ID: lot.ID},
		Quantity: line.Quantity,
		Price:    price,
		Subtotal: lineSubtotal,
	}, lineTax, nil
}

// DeleteSale siempre falla: las ventas son registros financieros inmutables.
func (uc *CreateSaleUseCase) DeleteSale(_ context.Context, _ string) error {
	return domain.ErrOperationNotAllowed
}

// GetSale obtiene una venta con sus líneas.
func (uc *CreateSaleUseCase) GetSale(_ context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales consulta ventas por canal/usuario/fechas.
func (uc *CreateSaleUseCase) ListSales(_ context.Context, q dto.SaleListQuery) ([]*dto.SaleResponse, error) {
	q.DefaultPage()
	filter := repository.SaleFilter{
		Channel: q.Channel,
		UserID:  q.UserID,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
	from, to, err := resolveDateRange(q.Date, q.StartAt, q.EndAt, q.Today, uc.clock)
	if err != nil {
		return nil, err
	}
	filter.From = from
	filter.To = to

	sales, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		items, err := uc.saleRepo.GetItems(sale.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toSaleResponse(sale, items))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:        sale.ID,
		Channel:   sale.Channel,
		UserID:    sale.UserID,
		Subtotal:  sale.Subtotal,
		TaxTotal:  sale.TaxTotal,
		Total:     sale.Total,
		CreatedAt: sale.CreatedAt,
		Items:     make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:       item.ID,
			ItemKind: string(item.Item.Kind),
			ItemID:   item.Item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal,
		})
	}
	return resp
}

// resolveDateRange convierte date/today/start+end en un rango [from, to).
func resolveDateRange(date, startAt, endAt string, today bool, clock domain.Clock) (*time.Time, *time.Time, error) {
	const layout = "2006-01-02"
	if today {
		now := clock.Now()
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to := from.AddDate(0, 0, 1)
		return &from, &to, nil
	}
	if date != "" {
		day, err := time.Parse(layout, date)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		to := day.AddDate(0, 0, 1)
		return &day, &to, nil
	}
	if startAt != "" && endAt != "" {
		from, err := time.Parse(layout, startAt)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		end, err := time.Parse(layout, endAt)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		to := end.AddDate(0, 0, 1)
		return &from, &to, nil
	}
	return nil, nil, nil
}
