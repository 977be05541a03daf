package entity

import "fmt"

// ItemKind discrimina el tipo de ítem al que apunta una referencia polimórfica
// (movimientos de inventario e ítems de venta).
type ItemKind string

const (
	ItemKindVariant   ItemKind = "variant"
	ItemKindWeightLot ItemKind = "weight_lot"
)

// Valid reporta si el kind es uno de los soportados.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindVariant, ItemKindWeightLot:
		return true
	}
	return false
}

// ItemRef referencia tipada a una variante o a un lote de peso.
// Reemplaza la comparación de nombres de clase del esquema polimórfico clásico.
type ItemRef struct {
	Kind ItemKind
	ID   string
}

// String para logs y mensajes de error.
func (r ItemRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}
