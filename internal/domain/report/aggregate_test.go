package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/report"
)

func resolved(n int, price, stock float64) []entity.ResolvedAlert {
	out := make([]entity.ResolvedAlert, n)
	for i := range out {
		out[i] = entity.ResolvedAlert{
			UnitPrice:     decimal.NewFromFloat(price),
			StockQuantity: decimal.NewFromFloat(stock),
		}
	}
	return out
}

func TestAggregate_ConjuntoVacio(t *testing.T) {
	stats := report.Aggregate(nil)

	assert.Equal(t, 0, stats.SavedProducts)
	assert.True(t, stats.MoneySaved.IsZero())
	assert.True(t, stats.WasteAvoidedKg.IsZero())
	recs := report.Recommendations(stats)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestAggregate_SumaDineroYKg(t *testing.T) {
	items := []entity.ResolvedAlert{
		{UnitPrice: decimal.NewFromFloat(2.5), StockQuantity: decimal.NewFromInt(10)},
		{UnitPrice: decimal.NewFromInt(4), StockQuantity: decimal.NewFromInt(3)},
		// producto borrado: precio y stock en cero
		{UnitPrice: decimal.Zero, StockQuantity: decimal.Zero},
	}

	stats := report.Aggregate(items)

	assert.Equal(t, 3, stats.SavedProducts)
	assert.True(t, decimal.NewFromInt(37).Equal(stats.MoneySaved), stats.MoneySaved.String())
	assert.True(t, decimal.NewFromFloat(6.5).Equal(stats.WasteAvoidedKg), stats.WasteAvoidedKg.String())
}

// ─────────────────────────────────────────────────────────────────────────────

func TestRecommendations_DiezNoFelicita(t *testing.T) {
	recs := report.Recommendations(report.Aggregate(resolved(10, 1, 1)))
	assert.Empty(t, recs)
}

func TestRecommendations_OnceFelicita(t *testing.T) {
	recs := report.Recommendations(report.Aggregate(resolved(11, 1, 1)))

	require.Len(t, recs, 1)
	assert.Equal(t, "exito", recs[0].Type)
	assert.Equal(t, "¡Excelente trabajo! Has salvado 11 productos del desperdicio.", recs[0].Message)
	assert.Equal(t, "Continuar con las buenas prácticas", recs[0].Action)
}
