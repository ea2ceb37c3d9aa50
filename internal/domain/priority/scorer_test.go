package priority_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/priority"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestClassify_Ejemplos(t *testing.T) {
	cases := []struct {
		name      string
		days      int
		stock     decimal.Decimal
		price     decimal.Decimal
		wantScore int
		wantLevel int
	}{
		{"vence hoy con stock y valor altos", 0, d(60), d(10), 65, entity.PriorityCritical},
		{"diez días, poco stock y valor", 10, d(3), d(1), 5, entity.PriorityLow},
		{"vence mañana, stock medio", 1, d(25), d(2), 35 + 10 + 0, entity.PriorityHigh},
		{"tres días, sin stock", 3, d(0), d(100), 25, entity.PriorityMedium},
		{"siete días, stock 6 y valor 60", 7, d(6), d(10), 15 + 5 + 2, entity.PriorityMedium},
		{"fuera del horizonte", 30, d(100), d(100), 0 + 15 + 10, entity.PriorityMedium},
		{"fuera del horizonte sin valor", 20, d(1), d(1), 0, entity.PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := priority.Classify(tc.days, tc.stock, tc.price)
			assert.Equal(t, tc.wantScore, got.Score)
			assert.Equal(t, tc.wantLevel, got.Level)
		})
	}
}

// Para todo daysRemaining <= 0 el nivel es crítico sin importar stock ni precio.
func TestClassify_VencidoSiempreCritico(t *testing.T) {
	for _, days := range []int{0, -1, -30} {
		for _, stock := range []float64{0, 3, 10, 60} {
			for _, price := range []float64{0, 1, 100} {
				got := priority.Classify(days, d(stock), d(price))
				assert.Equal(t, entity.PriorityCritical, got.Level, "días=%d stock=%v precio=%v", days, stock, price)
			}
		}
	}
	// el puntaje se conserva tal cual aunque el nivel se fuerce
	got := priority.Classify(-2, d(0), d(0))
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, entity.PriorityCritical, got.Level)
}

// Los tramos son inclusivos en el límite superior y excluyentes entre sí.
func TestClassify_TramosDeTiempo(t *testing.T) {
	cases := map[int]int{0: 40, 1: 35, 2: 25, 3: 25, 4: 15, 7: 15, 8: 5, 14: 5, 15: 0}
	for days, want := range cases {
		got := priority.Classify(days, decimal.Zero, decimal.Zero)
		assert.Equal(t, want, got.Score, "días=%d", days)
	}
}

func TestClassify_TramosDeStockYValor(t *testing.T) {
	// stock exactamente en el límite no suma el tramo superior
	assert.Equal(t, 10, priority.Classify(15, d(50), d(0)).Score)
	assert.Equal(t, 15, priority.Classify(15, d(51), d(0)).Score)
	assert.Equal(t, 5, priority.Classify(15, d(20), d(0)).Score)
	assert.Equal(t, 0, priority.Classify(15, d(5), d(0)).Score)

	// valor = 1 × precio para aislar el factor valor
	assert.Equal(t, 5, priority.Classify(15, d(1), d(500)).Score)
	assert.Equal(t, 10, priority.Classify(15, d(1), d(500.01)).Score)
	assert.Equal(t, 2, priority.Classify(15, d(1), d(100)).Score)
	assert.Equal(t, 0, priority.Classify(15, d(1), d(50)).Score)
}

func TestClassify_UmbralesDeNivel(t *testing.T) {
	// 35 (mañana) + 15 (stock 51) = 50 → crítica
	assert.Equal(t, entity.PriorityCritical, priority.Classify(1, d(51), d(0)).Level)
	// 25 + 10 = 35 → alta
	assert.Equal(t, entity.PriorityHigh, priority.Classify(3, d(21), d(0)).Level)
	// 15 + 5 = 20 → media
	assert.Equal(t, entity.PriorityMedium, priority.Classify(7, d(6), d(0)).Level)
	// 15 + 2 = 17 → baja
	assert.Equal(t, entity.PriorityLow, priority.Classify(7, d(1), d(60)).Level)
}

func TestClassification_Summary(t *testing.T) {
	got := priority.Classify(0, d(60), d(10))
	assert.Equal(t,
		"🔴 CRÍTICA - Acción inmediata requerida - Intervención urgente. Considerar descuento del 70% o donación inmediata.",
		got.Summary())
}
