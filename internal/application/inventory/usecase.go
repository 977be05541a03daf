package inventory

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

// LedgerUseCase aplica cambios de cantidad sobre un ítem (variante o lote de
// peso) y asienta el movimiento correspondiente, todo en una transacción con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository // atado al pool, solo lecturas
	clock    domain.Clock
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository, clock domain.Clock) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, clock: clock}
}

// MovementInputDTO entrada para aplicar un movimiento de inventario.
// Quantity > 0 para in/out; para adjustment es un delta con signo.
type MovementInputDTO struct {
	ItemKind entity.ItemKind
	ItemID   string
	Type     string
	Quantity decimal.Decimal
	UserID   string
	Note     string
}

// ApplyMovement valida la entrada, abre una transacción, bloquea la fila del
// ítem, aplica la mutación según tipo y asienta el movimiento en el diario.
// Si cualquier paso falla, nada persiste.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, input MovementInputDTO) (*entity.InventoryMovement, error) {
	if err := validateMovementInput(input); err != nil {
		return nil, err
	}

	movement := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		Item:      entity.ItemRef{Kind: input.ItemKind, ID: input.ItemID},
		Type:      input.Type,
		Quantity:  input.Quantity,
		UserID:    input.UserID,
		Note:      input.Note,
		CreatedAt: uc.clock.Now(),
	}

	err := uc.txRunner.Run(ctx, func(
		variantRepo repository.ProductVariantRepository,
		lotRepo repository.WeightLotRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		switch input.ItemKind {
		case entity.ItemKindVariant:
			if err := applyVariantMovement(variantRepo, input); err != nil {
				return err
			}
		case entity.ItemKindWeightLot:
			if err := applyWeightLotMovement(lotRepo, input); err != nil {
				return err
			}
		default:
			return domain.ErrInvalidInput
		}
		return movRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func validateMovementInput(input MovementInputDTO) error {
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidMovementType
	}
	if !input.ItemKind.Valid() || input.ItemID == "" || input.UserID == "" {
		return domain.ErrInvalidInput
	}
	if input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeAdjustment && !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	// Las variantes se cuentan en unidades enteras.
	if input.ItemKind == entity.ItemKindVariant && !input.Quantity.IsInteger() {
		return domain.ErrInvalidInput
	}
	return nil
}

// applyVariantMovement bloquea la variante y muta su stock entero.
// adjustment recorta en cero en lugar de fallar.
func applyVariantMovement(variantRepo repository.ProductVariantRepository, input MovementInputDTO) error {
	variant, err := variantRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}

	qty := input.Quantity.IntPart()
	var newStock int64
	switch input.Type {
	case entity.MovementTypeIn:
		newStock = variant.Stock + qty
	case entity.MovementTypeOut:
		if variant.Stock < qty {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, variant.Presentation)
		}
		newStock = variant.Stock - qty
	case entity.MovementTypeAdjustment:
		newStock = variant.Stock + qty
		if newStock < 0 {
			newStock = 0
		}
	default:
		return domain.ErrInvalidMovementType
	}
	return variantRepo.UpdateStock(variant.ID, newStock)
}

// applyWeightLotMovement bloquea el lote y muta sus contadores de peso.
// Una entrada crece también el peso inicial (recibir más del mismo lote
// amplía su capacidad); al quedar en cero el lote se desactiva.
func applyWeightLotMovement(lotRepo repository.WeightLotRepository, input MovementInputDTO) error {
	lot, err := lotRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}

	initial := lot.InitialWeight
	available := lot.AvailableWeight
	active := lot.Active

	switch input.Type {
	case entity.MovementTypeIn:
		available = available.Add(input.Quantity)
		initial = initial.Add(input.Quantity)
	case entity.MovementTypeOut:
		if available.LessThan(input.Quantity) {
			return domain.ErrInsufficientWeight
		}
		available = available.Sub(input.Quantity)
		if available.LessThanOrEqual(decimal.Zero) {
			active = false
		}
	case entity.MovementTypeAdjustment:
		available = available.Add(input.Quantity)
		if available.LessThanOrEqual(decimal.Zero) {
			available = decimal.Zero
			active = false
		} else if available.GreaterThan(initial) {
			// Una corrección que descubre más peso del registrado también
			// amplía la capacidad: disponible nunca supera al inicial.
			initial = available
		}
	default:
		return domain.ErrInvalidMovementType
	}
	return lotRepo.UpdateWeights(lot.ID, initial, available, active)
}

// ReduceWeight es la variante validada de la salida de peso: verifica en
// orden que el lote esté activo, no vencido y con peso suficiente, y luego
// aplica el mismo decremento con auto-desactivación. No asienta movimiento.
func (uc *LedgerUseCase) ReduceWeight(ctx context.Context, lotID string, weight decimal.Decimal) (*entity.WeightLot, error) {
	if lotID == "" || !weight.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.WeightLot
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductVariantRepository,
		lotRepo repository.WeightLotRepository,
		_ repository.InventoryMovementRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if !lot.Active {
			return domain.ErrInactiveLot
		}
		if lot.IsExpired(uc.clock.Now()) {
			return domain.ErrLotExpired
		}
		if lot.AvailableWeight.LessThan(weight) {
			return domain.ErrInsufficientWeight
		}

		lot.AvailableWeight = lot.AvailableWeight.Sub(weight)
		if lot.AvailableWeight.LessThanOrEqual(decimal.Zero) {
			lot.Active = false
		}
		if err := lotRepo.UpdateWeights(lot.ID, lot.InitialWeight, lot.AvailableWeight, lot.Active); err != nil {
			return err
		}
		updated = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMovement siempre falla: el diario es inmutable.
func (uc *LedgerUseCase) DeleteMovement(_ context.Context, _ string) error {
	return domain.ErrOperationNotAllowed
}

// GetMovement obtiene un movimiento por ID.
func (uc *LedgerUseCase) GetMovement(_ context.Context, id string) (*entity.InventoryMovement, error) {
	movement, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// ListMovements consulta el diario con filtros de tipo/usuario/ítem/fechas.
// today y date se resuelven con el reloj inyectado.
func (uc *LedgerUseCase) ListMovements(_ context.Context, q dto.MovementListQuery) ([]*entity.InventoryMovement, error) {
	q.DefaultPage()
	filter := repository.MovementFilter{
		Type:   q.Type,
		UserID: q.UserID,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.ItemKind != "" && q.ItemID != "" {
		kind := entity.ItemKind(q.ItemKind)
		if !kind.Valid() {
			return nil, domain.ErrInvalidInput
		}
		filter.Item = &entity.ItemRef{Kind: kind, ID: q.ItemID}
	}
	from, to, err := resolveDateRange(q.Date, q.StartAt, q.EndAt, q.Today, uc.clock)
	if err != nil {
		return nil, err
	}
	filter.From = from
	filter.To = to
	return uc.movRepo.List(filter)
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
