// Package priority clasifica la prioridad de una alerta de vencimiento con una
// tabla de puntajes fija (no es un modelo entrenado).
package priority

import (
	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

// Umbrales del valor en inventario (stock × precio unitario).
var (
	valueHigh   = decimal.NewFromInt(500)
	valueMedium = decimal.NewFromInt(100)
	valueLow    = decimal.NewFromInt(50)

	stockHigh   = decimal.NewFromInt(50)
	stockMedium = decimal.NewFromInt(20)
	stockLow    = decimal.NewFromInt(5)
)

// Classification resultado del scorer.
type Classification struct {
	Score          int
	Level          int    // 1 (baja) .. 4 (crítica)
	Label          string // etiqueta legible del nivel
	Recommendation string // acción sugerida (descuento o donación)
}

// Summary concatena etiqueta y recomendación tal como se guarda en alertas.clasificacion_ia.
func (c Classification) Summary() string {
	return c.Label + " - " + c.Recommendation
}

type tier struct {
	minScore       int
	level          int
	label          string
	recommendation string
}

// Ordenados de mayor a menor puntaje mínimo.
var tiers = [...]tier{
	{50, entity.PriorityCritical, "🔴 CRÍTICA - Acción inmediata requerida",
		"Intervención urgente. Considerar descuento del 70% o donación inmediata."},
	{35, entity.PriorityHigh, "🟠 ALTA - Atención urgente",
		"Aplicar descuento del 50% o usar en recetas de aprovechamiento."},
	{20, entity.PriorityMedium, "🟡 MEDIA - Monitorear de cerca",
		"Promocionar con descuento del 30%. Monitorear diariamente."},
	{0, entity.PriorityLow, "🔵 BAJA - Seguimiento rutinario",
		"Mantener seguimiento regular. Planificar estrategias de venta."},
}

// Classify suma los tres factores (tiempo, cantidad, valor) y mapea el puntaje a un nivel.
// daysRemaining negativo significa producto ya vencido; un producto vencido (o que vence
// hoy) es siempre crítico, aunque su puntaje no llegue a 50.
func Classify(daysRemaining int, stock, unitPrice decimal.Decimal) Classification {
	score := timeScore(daysRemaining) + stockScore(stock) + valueScore(stock.Mul(unitPrice))
	t := tierFor(score)
	if daysRemaining <= 0 {
		t = tiers[0]
	}
	return Classification{
		Score:          score,
		Level:          t.level,
		Label:          t.label,
		Recommendation: t.recommendation,
	}
}

func tierFor(score int) tier {
	for _, t := range tiers {
		if score >= t.minScore {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// timeScore factor tiempo (más peso). Los límites son inclusivos.
func timeScore(days int) int {
	switch {
	case days <= 0:
		return 40
	case days <= 1:
		return 35
	case days <= 3:
		return 25
	case days <= 7:
		return 15
	case days <= 14:
		return 5
	default:
		return 0
	}
}

// stockScore factor cantidad (peso medio).
func stockScore(stock decimal.Decimal) int {
	switch {
	case stock.GreaterThan(stockHigh):
		return 15
	case stock.GreaterThan(stockMedium):
		return 10
	case stock.GreaterThan(stockLow):
		return 5
	default:
		return 0
	}
}

// valueScore factor valor económico (peso menor).
func valueScore(value decimal.Decimal) int {
	switch {
	case value.GreaterThan(valueHigh):
		return 10
	case value.GreaterThan(valueMedium):
		return 5
	case value.GreaterThan(valueLow):
		return 2
	default:
		return 0
	}
}
