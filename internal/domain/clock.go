package domain

import "time"

// Clock abstrae la fuente de tiempo para poder probar vencimientos y
// filtros de "hoy" con fechas fijas.
type Clock interface {
	Now() time.Time
}

// SystemClock implementación de Clock sobre time.Now.
type SystemClock struct{}

// Now devuelve la hora actual del sistema.
func (SystemClock) Now() time.Time { return time.Now() }
