package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

// fixedClock devuelve siempre el mismo instante para poder probar
// vencimientos y filtros de fecha con valores deterministas.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	movRepo := memory.NewInventoryMovementRepository(store)
	uc := inventory.NewLedgerUseCase(memory.NewTxRunner(store), movRepo, fixedClock{now: testNow})
	return uc, store
}

func seedVariant(t *testing.T, store *memory.Store, stock int64) *entity.ProductVariant {
	t.Helper()
	variant := &entity.ProductVariant{
		ID:           "var-1",
		ProductID:    "prod-1",
		Presentation: "500 ml",
		SKU:          "SKU-500",
		Price:        decimal.RequireFromString("10.00"),
		Stock:        stock,
		MinStock:     2,
		TaxID:        "tax-1",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, memory.NewProductVariantRepository(store).Create(variant))
	return variant
}

func seedLot(t *testing.T, store *memory.Store, available string, expiresAt *time.Time, active bool) *entity.WeightLot {
	t.Helper()
	w := decimal.RequireFromString(available)
	lot := &entity.WeightLot{
		ID:              "lot-1",
		ProductID:       "prod-2",
		InitialWeight:   w,
		AvailableWeight: w,
		PricePerKg:      decimal.RequireFromString("80.00"),
		ExpiresAt:       expiresAt,
		Active:          active,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
	require.NoError(t, memory.NewWeightLotRepository(store).Create(lot))
	return lot
}

func movementInput(kind entity.ItemKind, id, typ, qty string) inventory.MovementInputDTO {
	return inventory.MovementInputDTO{
		ItemKind: kind,
		ItemID:   id,
		Type:     typ,
		Quantity: decimal.RequireFromString(qty),
		UserID:   testUserID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos sobre variantes
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaVariante_SumaStock(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 10)

	mov, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeIn, "5"))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, testUserID, mov.UserID)

	variant, err := memory.NewProductVariantRepository(store).GetByID("var-1")
	require.NoError(t, err)
	assert.Equal(t, int64(15), variant.Stock)

	// El asiento queda en el diario.
	movs, err := uc.ListMovements(context.Background(), dto.MovementListQuery{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, mov.ID, movs[0].ID)
}

func TestApplyMovement_SalidaVariante_RestaStock(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 10)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeOut, "4"))
	require.NoError(t, err)

	variant, err := memory.NewProductVariantRepository(store).GetByID("var-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), variant.Stock)
}

func TestApplyMovement_SalidaVariante_StockInsuficiente(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 3)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeOut, "5"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "500 ml", "el error debe identificar la presentación")

	// Nada persiste: ni cambio de stock ni asiento en el diario.
	variant, err := memory.NewProductVariantRepository(store).GetByID("var-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), variant.Stock)

	movs, err := uc.ListMovements(context.Background(), dto.MovementListQuery{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestApplyMovement_AjusteNegativo_RecortaEnCero(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 5)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeAdjustment, "-20"))
	require.NoError(t, err)

	variant, err := memory.NewProductVariantRepository(store).GetByID("var-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), variant.Stock, "el ajuste negativo recorta en cero, no falla")
}

func TestApplyMovement_VarianteCantidadFraccionada_Rechazada(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 10)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeIn, "1.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_TipoInvalido(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 10)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", "transfer", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestApplyMovement_VarianteInexistente(t *testing.T) {
	uc, _ := newLedger(t)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "no-existe", entity.MovementTypeIn, "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos sobre lotes de peso
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaLote_CreceInicialYDisponible(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "5.000", nil, true)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindWeightLot, "lot-1", entity.MovementTypeIn, "2.000"))
	require.NoError(t, err)

	lot, err := memory.NewWeightLotRepository(store).GetByID("lot-1")
	require.NoError(t, err)
	assert.True(t, lot.InitialWeight.Equal(decimal.RequireFromString("7.000")),
		"la entrada amplía la capacidad del lote: initial %s", lot.InitialWeight)
	assert.True(t, lot.AvailableWeight.Equal(decimal.RequireFromString("7.000")))
}

func TestApplyMovement_SalidaLote_DesactivaEnCero(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "2.500", nil, true)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindWeightLot, "lot-1", entity.MovementTypeOut, "2.500"))
	require.NoError(t, err)

	lot, err := memory.NewWeightLotRepository(store).GetByID("lot-1")
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.IsZero())
	assert.False(t, lot.Active, "el lote debe desactivarse al agotarse")
}

func TestApplyMovement_AjusteLote_DisponibleNuncaSuperaInicial(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "3.000", nil, true)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindWeightLot, "lot-1", entity.MovementTypeAdjustment, "1.500"))
	require.NoError(t, err)

	lot, err := memory.NewWeightLotRepository(store).GetByID("lot-1")
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.Equal(decimal.RequireFromString("4.500")))
	assert.True(t, lot.InitialWeight.Equal(decimal.RequireFromString("4.500")),
		"el inicial crece junto con el ajuste: disponible %s, inicial %s", lot.AvailableWeight, lot.InitialWeight)
}

func TestApplyMovement_SalidaLote_PesoInsuficiente(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "1.000", nil, true)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindWeightLot, "lot-1", entity.MovementTypeOut, "1.500"))
	require.ErrorIs(t, err, domain.ErrInsufficientWeight)

	lot, err := memory.NewWeightLotRepository(store).GetByID("lot-1")
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.Equal(decimal.RequireFromString("1.000")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ReduceWeight — merma validada, sin asiento en el diario
// ──────────────────────────────────────────────────────────────────────────────

func TestReduceWeight_Exitoso_NoAsientaMovimiento(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "5.000", nil, true)

	lot, err := uc.ReduceWeight(context.Background(), "lot-1", decimal.RequireFromString("1.500"))
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.Equal(decimal.RequireFromString("3.500")))
	assert.True(t, lot.InitialWeight.Equal(decimal.RequireFromString("5.000")), "la merma no toca el inicial")
	assert.True(t, lot.Active)

	movs, err := uc.ListMovements(context.Background(), dto.MovementListQuery{})
	require.NoError(t, err)
	assert.Empty(t, movs, "la merma no deja rastro en el diario")
}

func TestReduceWeight_HastaCero_Desactiva(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "2.000", nil, true)

	lot, err := uc.ReduceWeight(context.Background(), "lot-1", decimal.RequireFromString("2.000"))
	require.NoError(t, err)
	assert.True(t, lot.AvailableWeight.IsZero())
	assert.False(t, lot.Active)
}

// Un lote inactivo, vencido y sin peso suficiente debe fallar por inactivo:
// la verificación de estado va antes que la de vencimiento y disponibilidad.
func TestReduceWeight_OrdenDeValidacion_InactivoPrimero(t *testing.T) {
	uc, store := newLedger(t)
	expired := testNow.AddDate(0, 0, -1)
	seedLot(t, store, "0.500", &expired, false)

	_, err := uc.ReduceWeight(context.Background(), "lot-1", decimal.RequireFromString("2.000"))
	assert.ErrorIs(t, err, domain.ErrInactiveLot)
}

// Un lote activo pero vencido y sin peso suficiente falla por vencido:
// el vencimiento se verifica antes que la disponibilidad.
func TestReduceWeight_OrdenDeValidacion_VencidoAntesQueInsuficiente(t *testing.T) {
	uc, store := newLedger(t)
	expired := testNow.AddDate(0, 0, -1)
	seedLot(t, store, "0.500", &expired, true)

	_, err := uc.ReduceWeight(context.Background(), "lot-1", decimal.RequireFromString("2.000"))
	assert.ErrorIs(t, err, domain.ErrLotExpired)
}

func TestReduceWeight_PesoInsuficiente(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "0.500", nil, true)

	_, err := uc.ReduceWeight(context.Background(), "lot-1", decimal.RequireFromString("2.000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientWeight)
}

func TestReduceWeight_PesoNoPositivo(t *testing.T) {
	uc, store := newLedger(t)
	seedLot(t, store, "5.000", nil, true)

	_, err := uc.ReduceWeight(context.Background(), "lot-1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inmutabilidad y consultas del diario
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteMovement_SiempreRechazado(t *testing.T) {
	uc, _ := newLedger(t)
	err := uc.DeleteMovement(context.Background(), "cualquier-id")
	assert.ErrorIs(t, err, domain.ErrOperationNotAllowed)
}

func TestListMovements_FiltroHoy(t *testing.T) {
	uc, store := newLedger(t)
	seedVariant(t, store, 10)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeIn, "1"))
	require.NoError(t, err)

	movs, err := uc.ListMovements(context.Background(), dto.MovementListQuery{Today: true})
	require.NoError(t, err)
	assert.Len(t, movs, 1, "el movimiento asentado con el reloj fijo cae dentro de hoy")

	movs, err = uc.ListMovements(context.Background(), dto.MovementListQuery{Date: "2020-01-01"})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// Un asiento estampado exactamente a medianoche pertenece al día que empieza,
// no al que termina: la cota superior del rango de fechas es exclusiva.
func TestListMovements_FiltroFecha_MedianocheEsDelDiaSiguiente(t *testing.T) {
	store := memory.NewStore()
	midnight := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	uc := inventory.NewLedgerUseCase(memory.NewTxRunner(store), memory.NewInventoryMovementRepository(store), fixedClock{now: midnight})
	seedVariant(t, store, 10)

	_, err := uc.ApplyMovement(context.Background(), movementInput(entity.ItemKindVariant, "var-1", entity.MovementTypeIn, "1"))
	require.NoError(t, err)

	movs, err := uc.ListMovements(context.Background(), dto.MovementListQuery{Date: "2025-06-15"})
	require.NoError(t, err)
	assert.Empty(t, movs, "medianoche no cuenta para el día anterior")

	movs, err = uc.ListMovements(context.Background(), dto.MovementListQuery{Date: "2025-06-16"})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestListMovements_ItemKindInvalido(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.ListMovements(context.Background(), dto.MovementListQuery{ItemKind: "bodega", ItemID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
