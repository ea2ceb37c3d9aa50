package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto perecedero.
const (
	ProductStatusActive       = "activo"
	ProductStatusExpiringSoon = "proximo_vencer"
	ProductStatusExpired      = "vencido"
)

// Product representa un producto perecedero del inventario.
// StockQuantity se modifica solo vía movimientos de stock (ver StockMovement).
type Product struct {
	ID               string
	Name             string
	Description      string
	Barcode          string
	ExpiryDate       time.Time // fecha de caducidad; solo importa la parte de fecha
	StockQuantity    decimal.Decimal
	UnitPrice        decimal.Decimal
	Status           string // activo, proximo_vencer, vencido
	AIClassification string
	CategoryID       string // vacío si no tiene categoría
	SupplierID       string
	StorageID        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DaysUntilExpiry devuelve los días calendario que faltan para la caducidad
// respecto a today. Negativo si ya venció.
func (p *Product) DaysUntilExpiry(today time.Time) int {
	return DaysBetween(today, p.ExpiryDate)
}

// DaysBetween diferencia con signo en días calendario (to - from), ignorando la hora.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// IsValidProductStatus indica si s es un estado de producto conocido.
func IsValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusExpiringSoon, ProductStatusExpired:
		return true
	}
	return false
}
