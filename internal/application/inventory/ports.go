package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger:
// la mutación del ítem y el asiento en el diario persisten juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		variantRepo repository.ProductVariantRepository,
		lotRepo repository.WeightLotRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
