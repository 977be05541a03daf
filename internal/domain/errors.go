package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientWeight  = errors.New("peso disponible insuficiente")
	ErrInactiveLot         = errors.New("lote inactivo")
	ErrLotExpired          = errors.New("lote vencido")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInvalidProductType  = errors.New("tipo de venta del producto no corresponde")
	ErrOperationNotAllowed = errors.New("operación no permitida")
	ErrTaxInUse            = errors.New("impuesto en uso por variantes")
	ErrHasSales            = errors.New("el ítem tiene ventas asociadas")
	ErrHasMovements        = errors.New("el ítem tiene movimientos asociados")
)
