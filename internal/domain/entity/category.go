package entity

import "time"

// Category agrupa productos. No se elimina mientras tenga productos.
type Category struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
