package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "salida"
)

// StockMovement representa una entrada o salida de stock de un producto.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string          // entrada, salida
	Quantity  decimal.Decimal // siempre positiva; el signo lo da Type
	Reason    string
	Date      time.Time
	CreatedBy string // vacío si no hay usuario autenticado
}
