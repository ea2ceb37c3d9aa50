// Package report agrega alertas resueltas en las estadísticas del reporte de desperdicio.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

// KgPerUnit peso estimado por unidad de stock salvada.
var KgPerUnit = decimal.NewFromFloat(0.5)

// SuccessThreshold a partir de más de este número de productos salvados se felicita al usuario.
const SuccessThreshold = 10

// Aggregate calcula productos salvados, dinero ahorrado (precio × stock) y kg evitados (stock × 0.5).
func Aggregate(items []entity.ResolvedAlert) entity.ReportStatistics {
	stats := entity.ReportStatistics{
		MoneySaved:     decimal.Zero,
		WasteAvoidedKg: decimal.Zero,
	}
	for _, it := range items {
		stats.SavedProducts++
		stats.MoneySaved = stats.MoneySaved.Add(it.UnitPrice.Mul(it.StockQuantity))
		stats.WasteAvoidedKg = stats.WasteAvoidedKg.Add(it.StockQuantity.Mul(KgPerUnit))
	}
	return stats
}

// Recommendations vacío salvo que se hayan salvado más de SuccessThreshold productos.
func Recommendations(stats entity.ReportStatistics) []entity.ReportRecommendation {
	recs := []entity.ReportRecommendation{}
	if stats.SavedProducts > SuccessThreshold {
		recs = append(recs, entity.ReportRecommendation{
			Type:    "exito",
			Message: fmt.Sprintf("¡Excelente trabajo! Has salvado %d productos del desperdicio.", stats.SavedProducts),
			Action:  "Continuar con las buenas prácticas",
		})
	}
	return recs
}
