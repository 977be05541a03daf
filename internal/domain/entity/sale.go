package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelStore  = "store"
	ChannelOnline = "online"
)

// ValidChannel reporta si el canal es uno de los soportados.
func ValidChannel(c string) bool {
	return c == ChannelStore || c == ChannelOnline
}

// Sale es una venta comprometida: registro financiero inmutable con totales
// calculados. El borrado se rechaza siempre.
type Sale struct {
	ID        string
	Channel   string // store | online
	UserID    string
	Subtotal  decimal.Decimal
	TaxTotal  decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleItem es una línea de venta. Price es una foto del precio unitario al
// momento de la venta, no una referencia viva al catálogo.
type SaleItem struct {
	ID       string
	SaleID   string
	Item     ItemRef
	Quantity decimal.Decimal // entera para variantes, 3 decimales para lotes
	Price    decimal.Decimal // precio unitario al momento de la venta
	Subtotal decimal.Decimal
}
