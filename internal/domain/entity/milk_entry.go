package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MilkEntry es una entrega de leche registrada por sesión. Inmutable una vez guardada;
// puede haber varias para el mismo (socio, fecha, sesión).
type MilkEntry struct {
	ID        string
	UserID    string
	EntryDate time.Time // solo importa la parte de fecha
	Session   Session
	Quantity  decimal.Decimal // litros, >= 0
	Fat       decimal.Decimal // % grasa
	SNF       decimal.Decimal // % sólidos no grasos
	Amount    decimal.Decimal // importe liquidado
	CreatedAt time.Time
}
