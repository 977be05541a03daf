package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User es el usuario que actúa en movimientos y ventas.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
