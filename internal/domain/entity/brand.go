package entity

import "time"

// Brand es la marca de un producto. No se elimina mientras tenga productos.
type Brand struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
