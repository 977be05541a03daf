package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCashierID = "00000000-0000-0000-0000-000000000009"

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newSaleEngine(t *testing.T) (*sales.CreateSaleUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := sales.NewCreateSaleUseCase(
		memory.NewTxRunner(store),
		memory.NewSaleRepository(store),
		fixedClock{now: testNow},
		sales.Config{WeightTaxPercent: decimal.NewFromInt(5)},
	)
	return uc, store
}

func seedTax(t *testing.T, store *memory.Store, id, percentage string) {
	t.Helper()
	require.NoError(t, memory.NewTaxRepository(store).Create(&entity.Tax{
		ID:         id,
		Name:       "IVA " + percentage,
		Percentage: decimal.RequireFromString(percentage),
		Active:     true,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}))
}

func seedVariant(t *testing.T, store *memory.Store, id, price string, stock int64, taxID string) {
	t.Helper()
	require.NoError(t, memory.NewProductVariantRepository(store).Create(&entity.ProductVariant{
		ID:           id,
		ProductID:    "prod-unit",
		Presentation: "unidad " + id,
		SKU:          "SKU-" + id,
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		MinStock:     1,
		TaxID:        taxID,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}))
}

func seedLot(t *testing.T, store *memory.Store, id, available, pricePerKg string) {
	t.Helper()
	w := decimal.RequireFromString(available)
	require.NoError(t, memory.NewWeightLotRepository(store).Create(&entity.WeightLot{
		ID:              id,
		ProductID:       "prod-weight",
		InitialWeight:   w,
		AvailableWeight: w,
		PricePerKg:      decimal.RequireFromString(pricePerKg),
		Active:          true,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}))
}

func cart(channel string, lines ...dto.SaleItemInput) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{Channel: channel, Items: lines}
}

func variantLine(id, qty string) dto.SaleItemInput {
	return dto.SaleItemInput{Kind: string(entity.ItemKindVariant), ID: id, Quantity: decimal.RequireFromString(qty)}
}

func lotLine(id, qty string) dto.SaleItemInput {
	return dto.SaleItemInput{Kind: string(entity.ItemKindWeightLot), ID: id, Quantity: decimal.RequireFromString(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y redondeo
// ──────────────────────────────────────────────────────────────────────────────

// 3 unidades a 10.00 con IVA 16% → subtotal 30.00, impuesto 4.80, total 34.80.
func TestCreateSale_Variante_TotalesRedondeados(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedTax(t, store, "tax-16", "16")
	seedVariant(t, store, "var-1", "10.00", 10, "tax-16")

	resp, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, variantLine("var-1", "3")))
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("30.00")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.RequireFromString("4.80")), "impuesto %s", resp.TaxTotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("34.80")), "total %s", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Price.Equal(decimal.RequireFromString("10.00")))

	variant, err := memory.NewProductVariantRepository(store).GetByID("var-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), variant.Stock)
}

// 2.500 kg de un lote a 80.00/kg → subtotal 200.00, impuesto plano 5% = 10.00.
func TestCreateSale_LoteDePeso_TasaPlana(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedLot(t, store, "lot-1", "5.000", "80.00")

	resp, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, lotLine("lot-1", "2.500")))
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("200.00")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.RequireFromString("10.00")), "impuesto %s", resp.TaxTotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("210.00")), "total %s", resp.Total)

	lot, err := memory.NewWeightLotRepository(store).GetByID("lot-1")
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.Equal(decimal.RequireFromString("2.500")), "disponible %s", lot.AvailableWeight)
	assert.True(t, lot.Active)
}

// La venta usa el precio de oferta cuando existe.
func TestCreateSale_Variante_UsaPrecioDeOferta(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedTax(t, store, "tax-0", "0")
	salePrice := decimal.RequireFromString("8.00")
	require.NoError(t, memory.NewProductVariantRepository(store).Create(&entity.ProductVariant{
		ID:           "var-oferta",
		ProductID:    "prod-unit",
		Presentation: "oferta",
		SKU:          "SKU-OF",
		Price:        decimal.RequireFromString("10.00"),
		SalePrice:    &salePrice,
		Stock:        5,
		TaxID:        "tax-0",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}))

	resp, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelOnline, variantLine("var-oferta", "2")))
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("16.00")), "subtotal %s", resp.Subtotal)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Price.Equal(salePrice))
}

// Vender exactamente el peso disponible desactiva el lote.
func TestCreateSale_LoteAgotado_SeDesactiva(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedLot(t, store, "lot-1", "1.250", "40.00")

	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, lotLine("lot-1", "1.250")))
	require.NoError(t, err)

	lot, err := memory.NewWeightLotRepository(store).GetByID("lot-1")
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.IsZero())
	assert.False(t, lot.Active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Si la segunda línea falla, la primera también se revierte: el stock vuelve
// a su valor original y no queda ninguna venta persistida.
func TestCreateSale_LineaFallida_RevierteTodo(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedTax(t, store, "tax-16", "16")
	seedVariant(t, store, "var-1", "10.00", 10, "tax-16")
	seedLot(t, store, "lot-1", "1.000", "80.00")

	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore,
		variantLine("var-1", "3"),
		lotLine("lot-1", "9.999"), // excede lo disponible
	))
	require.ErrorIs(t, err, domain.ErrInsufficientWeight)

	variant, err := memory.NewProductVariantRepository(store).GetByID("var-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), variant.Stock, "el descuento de la primera línea debe revertirse")

	ventas, err := uc.ListSales(context.Background(), dto.SaleListQuery{})
	require.NoError(t, err)
	assert.Empty(t, ventas, "no debe quedar ninguna venta persistida")
}

func TestCreateSale_StockInsuficiente_IdentificaPresentacion(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedTax(t, store, "tax-16", "16")
	seedVariant(t, store, "var-1", "10.00", 2, "tax-16")

	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, variantLine("var-1", "5")))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "unidad var-1")
}

func TestCreateSale_LoteInactivo_Rechazado(t *testing.T) {
	uc, store := newSaleEngine(t)
	w := decimal.RequireFromString("5.000")
	require.NoError(t, memory.NewWeightLotRepository(store).Create(&entity.WeightLot{
		ID:              "lot-inactivo",
		ProductID:       "prod-weight",
		InitialWeight:   w,
		AvailableWeight: w,
		PricePerKg:      decimal.RequireFromString("80.00"),
		Active:          false,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}))

	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, lotLine("lot-inactivo", "1.000")))
	assert.ErrorIs(t, err, domain.ErrInactiveLot)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada e inmutabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_VarianteCantidadFraccionada_Rechazada(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedTax(t, store, "tax-16", "16")
	seedVariant(t, store, "var-1", "10.00", 10, "tax-16")

	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, variantLine("var-1", "1.5")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CanalInvalido(t *testing.T) {
	uc, _ := newSaleEngine(t)
	_, err := uc.CreateSale(context.Background(), testCashierID, cart("telefono", variantLine("var-1", "1")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CarritoVacio(t *testing.T) {
	uc, _ := newSaleEngine(t)
	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una venta cerrada exactamente a medianoche pertenece al día que empieza:
// la cota superior del rango de fechas es exclusiva.
func TestListSales_FiltroFecha_MedianocheEsDelDiaSiguiente(t *testing.T) {
	store := memory.NewStore()
	midnight := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	uc := sales.NewCreateSaleUseCase(
		memory.NewTxRunner(store),
		memory.NewSaleRepository(store),
		fixedClock{now: midnight},
		sales.Config{WeightTaxPercent: decimal.NewFromInt(5)},
	)
	seedTax(t, store, "tax-16", "16")
	seedVariant(t, store, "var-1", "10.00", 10, "tax-16")

	_, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore, variantLine("var-1", "1")))
	require.NoError(t, err)

	ventas, err := uc.ListSales(context.Background(), dto.SaleListQuery{Date: "2025-06-15"})
	require.NoError(t, err)
	assert.Empty(t, ventas, "medianoche no cuenta para el día anterior")

	ventas, err = uc.ListSales(context.Background(), dto.SaleListQuery{Date: "2025-06-16"})
	require.NoError(t, err)
	assert.Len(t, ventas, 1)
}

func TestDeleteSale_SiempreRechazado(t *testing.T) {
	uc, _ := newSaleEngine(t)
	err := uc.DeleteSale(context.Background(), "cualquier-id")
	assert.ErrorIs(t, err, domain.ErrOperationNotAllowed)
}

func TestGetSale_ConLineas(t *testing.T) {
	uc, store := newSaleEngine(t)
	seedTax(t, store, "tax-16", "16")
	seedVariant(t, store, "var-1", "10.00", 10, "tax-16")
	seedLot(t, store, "lot-1", "5.000", "80.00")

	created, err := uc.CreateSale(context.Background(), testCashierID, cart(entity.ChannelStore,
		variantLine("var-1", "1"),
		lotLine("lot-1", "0.500"),
	))
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 2)
	assert.True(t, got.Total.Equal(created.Total))
}

func TestGetSale_Inexistente(t *testing.T) {
	uc, _ := newSaleEngine(t)
	_, err := uc.GetSale(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
