package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportTypeWaste único tipo de reporte implementado (desperdicio evitado).
const ReportTypeWaste = "desperdicio"

// ResolvedAlert alerta resuelta con los datos del producto necesarios para el reporte.
// Precio y stock llegan en cero si el producto ya no existe.
type ResolvedAlert struct {
	AlertID       string
	ProductName   string
	UnitPrice     decimal.Decimal
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
}

// ReportStatistics agregados de un reporte de desperdicio.
type ReportStatistics struct {
	SavedProducts  int
	MoneySaved     decimal.Decimal
	WasteAvoidedKg decimal.Decimal
}

// ReportRecommendation recomendación derivada de las estadísticas.
type ReportRecommendation struct {
	Type    string
	Message string
	Action  string
}

// Report resultado de una ejecución del agregador. Se registra en la tabla reportes
// como histórico no autoritativo.
type Report struct {
	ID              string
	Type            string
	StartDate       time.Time
	EndDate         time.Time
	Statistics      ReportStatistics
	Recommendations []ReportRecommendation
	CreatedAt       time.Time
}
