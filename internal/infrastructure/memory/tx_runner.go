package memory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner simula transacciones sobre el store en memoria: toma una copia
// del estado antes de ejecutar fn y la restaura si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos del store; en error restaura el estado previo.
func (r *TxRunner) Run(_ context.Context, fn func(
	variantRepo repository.ProductVariantRepository,
	lotRepo repository.WeightLotRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	r.s.mu.Lock()
	before := r.s.snapshot()
	r.s.mu.Unlock()

	err := fn(
		NewProductVariantRepository(r.s),
		NewWeightLotRepository(r.s),
		NewInventoryMovementRepository(r.s),
	)
	if err != nil {
		r.s.mu.Lock()
		r.s.restore(before)
		r.s.mu.Unlock()
	}
	return err
}

// RunSale ejecuta fn con los repos del motor de ventas; en error restaura
// el estado previo.
func (r *TxRunner) RunSale(_ context.Context, fn func(
	variantRepo repository.ProductVariantRepository,
	lotRepo repository.WeightLotRepository,
	taxRepo repository.TaxRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.s.mu.Lock()
	before := r.s.snapshot()
	r.s.mu.Unlock()

	err := fn(
		NewProductVariantRepository(r.s),
		NewWeightLotRepository(r.s),
		NewTaxRepository(r.s),
		NewSaleRepository(r.s),
	)
	if err != nil {
		r.s.mu.Lock()
		r.s.restore(before)
		r.s.mu.Unlock()
	}
	return err
}
