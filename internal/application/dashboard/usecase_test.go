package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/application/dashboard"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

type fakeProducts struct {
	repository.ProductRepository

	total, expiring int
	days            int
}

func (f *fakeProducts) Count(context.Context) (int, error) { return f.total, nil }

func (f *fakeProducts) CountExpiringWithin(_ context.Context, _ time.Time, days int) (int, error) {
	f.days = days
	return f.expiring, nil
}

type fakeAlerts struct {
	repository.AlertRepository

	byLevel map[int]int
	err     error
}

func (f *fakeAlerts) CountActiveByPriority(context.Context) (map[int]int, error) {
	return f.byLevel, f.err
}

type fakeStats struct{ stats entity.ReportStatistics }

func (f fakeStats) MonthToDate(context.Context) (entity.ReportStatistics, error) { return f.stats, nil }

func TestGetSummary_UneLasTresFuentes(t *testing.T) {
	products := &fakeProducts{total: 40, expiring: 6}
	alerts := &fakeAlerts{byLevel: map[int]int{4: 2, 2: 3}}
	stats := fakeStats{entity.ReportStatistics{SavedProducts: 7, MoneySaved: decimal.NewFromFloat(120.456), WasteAvoidedKg: decimal.NewFromInt(9)}}

	uc := dashboard.NewDashboardUseCase(products, alerts, stats).
		WithClock(func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) })

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 40, got.TotalProducts)
	assert.Equal(t, 6, got.ExpiringProducts)
	assert.Equal(t, dashboard.ExpiringHorizonDays, products.days)
	assert.Equal(t, map[string]int{"1": 0, "2": 3, "3": 0, "4": 2}, got.ActiveAlertsByPriority)
	assert.Equal(t, 5, got.TotalActiveAlerts)
	assert.Equal(t, 7, got.MonthStatistics.SavedProducts)
	assert.Equal(t, "120.46", got.MonthStatistics.MoneySaved.String())
	assert.Equal(t, "Octubre 2026", got.DateLabel)
}

func TestGetSummary_ErrorEnAlertas(t *testing.T) {
	uc := dashboard.NewDashboardUseCase(&fakeProducts{}, &fakeAlerts{err: errors.New("db")}, fakeStats{})

	_, err := uc.GetSummary(context.Background())
	assert.Error(t, err)
}
