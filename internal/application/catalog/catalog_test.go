package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

var clk = fixedClock{now: testNow}

func seedProduct(t *testing.T, store *memory.Store, id, saleMode string) {
	t.Helper()
	require.NoError(t, memory.NewProductRepository(store).Create(&entity.Product{
		ID:         id,
		Name:       "Producto " + id,
		SaleMode:   saleMode,
		CategoryID: "cat-1",
		BrandID:    "brand-1",
		Active:     true,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}))
}

func seedTax(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	require.NoError(t, memory.NewTaxRepository(store).Create(&entity.Tax{
		ID:         id,
		Name:       "IVA",
		Percentage: decimal.NewFromInt(16),
		Active:     true,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Variantes — compuerta de modo de venta y reglas de precio
// ──────────────────────────────────────────────────────────────────────────────

func newVariantUC(store *memory.Store) *catalog.VariantUseCase {
	return catalog.NewVariantUseCase(
		memory.NewProductVariantRepository(store),
		memory.NewProductRepository(store),
		memory.NewTaxRepository(store),
		clk,
	)
}

func TestVariantCreate_ProductoDePeso_Rechazado(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-w", entity.SaleModeWeight)
	seedTax(t, store, "tax-1")

	_, err := newVariantUC(store).Create(context.Background(), dto.CreateVariantRequest{
		ProductID:    "prod-w",
		Presentation: "500 g",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		TaxID:        "tax-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProductType)
}

func TestVariantCreate_OfertaMayorOIgualAlPrecio_Rechazada(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-u", entity.SaleModeUnit)
	seedTax(t, store, "tax-1")

	salePrice := decimal.RequireFromString("10.00") // igual al precio regular
	_, err := newVariantUC(store).Create(context.Background(), dto.CreateVariantRequest{
		ProductID:    "prod-u",
		Presentation: "500 ml",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		SalePrice:    &salePrice,
		TaxID:        "tax-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVariantCreate_Exitoso_ConStockInicial(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-u", entity.SaleModeUnit)
	seedTax(t, store, "tax-1")

	v, err := newVariantUC(store).Create(context.Background(), dto.CreateVariantRequest{
		ProductID:    "prod-u",
		Presentation: "500 ml",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		Stock:        25,
		MinStock:     5,
		TaxID:        "tax-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), v.Stock)
	assert.False(t, v.LowStock)
}

// failingTaxRepo simula una base caída: toda consulta por ID devuelve error.
type failingTaxRepo struct {
	repository.TaxRepository
}

var errDBDown = errors.New("conexión rechazada")

func (failingTaxRepo) GetByID(string) (*entity.Tax, error) { return nil, errDBDown }

// Un error de infraestructura al resolver el impuesto debe propagarse tal
// cual, no disfrazarse de "no encontrado".
func TestVariantCreate_ErrorDeInfraestructura_SePropaga(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-u", entity.SaleModeUnit)

	uc := catalog.NewVariantUseCase(
		memory.NewProductVariantRepository(store),
		memory.NewProductRepository(store),
		failingTaxRepo{},
		clk,
	)
	_, err := uc.Create(context.Background(), dto.CreateVariantRequest{
		ProductID:    "prod-u",
		Presentation: "500 ml",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		TaxID:        "tax-1",
	})
	assert.ErrorIs(t, err, errDBDown)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestVariantDelete_ConMovimientos_Rechazado(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-u", entity.SaleModeUnit)
	seedTax(t, store, "tax-1")
	uc := newVariantUC(store)

	v, err := uc.Create(context.Background(), dto.CreateVariantRequest{
		ProductID:    "prod-u",
		Presentation: "500 ml",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		TaxID:        "tax-1",
	})
	require.NoError(t, err)

	require.NoError(t, memory.NewInventoryMovementRepository(store).Create(&entity.InventoryMovement{
		ID:        "mov-1",
		Item:      entity.ItemRef{Kind: entity.ItemKindVariant, ID: v.ID},
		Type:      entity.MovementTypeIn,
		Quantity:  decimal.NewFromInt(1),
		UserID:    "user-1",
		CreatedAt: testNow,
	}))

	err = uc.Delete(context.Background(), v.ID)
	assert.ErrorIs(t, err, domain.ErrHasMovements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes de peso — compuerta de modo de venta y contadores
// ──────────────────────────────────────────────────────────────────────────────

func newLotUC(store *memory.Store) *catalog.WeightLotUseCase {
	return catalog.NewWeightLotUseCase(
		memory.NewWeightLotRepository(store),
		memory.NewProductRepository(store),
		clk,
	)
}

func TestWeightLotCreate_ProductoDeUnidad_Rechazado(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-u", entity.SaleModeUnit)

	_, err := newLotUC(store).Create(context.Background(), dto.CreateWeightLotRequest{
		ProductID:     "prod-u",
		InitialWeight: decimal.RequireFromString("5.000"),
		PricePerKg:    decimal.RequireFromString("80.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProductType)
}

func TestWeightLotCreate_DisponibleArrancaIgualAlInicial(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-w", entity.SaleModeWeight)

	lot, err := newLotUC(store).Create(context.Background(), dto.CreateWeightLotRequest{
		ProductID:     "prod-w",
		InitialWeight: decimal.RequireFromString("5.1234"), // se redondea a 3 decimales
		PricePerKg:    decimal.RequireFromString("80.00"),
	})
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.Equal(lot.InitialWeight))
	assert.True(t, lot.InitialWeight.Equal(decimal.RequireFromString("5.123")))
	assert.True(t, lot.Active)
	assert.True(t, lot.SoldWeight.IsZero())
}

func TestWeightLotUpdate_ReactivarSinPeso_Rechazado(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-w", entity.SaleModeWeight)
	uc := newLotUC(store)

	lot, err := uc.Create(context.Background(), dto.CreateWeightLotRequest{
		ProductID:     "prod-w",
		InitialWeight: decimal.RequireFromString("2.000"),
		PricePerKg:    decimal.RequireFromString("40.00"),
	})
	require.NoError(t, err)

	// Agotar el lote directamente en el repositorio.
	require.NoError(t, memory.NewWeightLotRepository(store).UpdateWeights(
		lot.ID, decimal.RequireFromString("2.000"), decimal.Zero, false))

	active := true
	_, err = uc.Update(context.Background(), lot.ID, dto.UpdateWeightLotRequest{
		PricePerKg: decimal.RequireFromString("40.00"),
		Active:     &active,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Impuestos
// ──────────────────────────────────────────────────────────────────────────────

func newTaxUC(store *memory.Store) *catalog.TaxUseCase {
	return catalog.NewTaxUseCase(memory.NewTaxRepository(store), clk)
}

func TestTaxCreate_PorcentajeFueraDeRango(t *testing.T) {
	store := memory.NewStore()
	uc := newTaxUC(store)

	_, err := uc.Create(context.Background(), dto.TaxRequest{
		Name:       "IVA",
		Percentage: decimal.NewFromInt(150),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.TaxRequest{
		Name:       "IVA",
		Percentage: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaxDelete_EnUso_Rechazado(t *testing.T) {
	store := memory.NewStore()
	seedTax(t, store, "tax-1")
	require.NoError(t, memory.NewProductVariantRepository(store).Create(&entity.ProductVariant{
		ID:           "var-1",
		ProductID:    "prod-u",
		Presentation: "500 ml",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		TaxID:        "tax-1",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}))

	err := newTaxUC(store).Delete(context.Background(), "tax-1")
	assert.ErrorIs(t, err, domain.ErrTaxInUse)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos — borrado con hijos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_ConVariantes_Rechazado(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "prod-u", entity.SaleModeUnit)
	seedTax(t, store, "tax-1")
	require.NoError(t, memory.NewProductVariantRepository(store).Create(&entity.ProductVariant{
		ID:           "var-1",
		ProductID:    "prod-u",
		Presentation: "500 ml",
		SKU:          "SKU-1",
		Price:        decimal.RequireFromString("10.00"),
		TaxID:        "tax-1",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}))

	uc := catalog.NewProductUseCase(
		memory.NewProductRepository(store),
		memory.NewCategoryRepository(store),
		memory.NewBrandRepository(store),
		clk,
	)
	err := uc.Delete(context.Background(), "prod-u")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
