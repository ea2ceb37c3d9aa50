// Package dashboard arma el resumen unificado de inventario, alertas y reportes.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/reportes"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

// ExpiringHorizonDays mismo horizonte que el generador de alertas.
const ExpiringHorizonDays = 14

// MonthStatistics fuente de las estadísticas del mes (ReportUseCase).
type MonthStatistics interface {
	MonthToDate(ctx context.Context) (entity.ReportStatistics, error)
}

// DashboardUseCase genera el resumen del panel unificado.
// Solo lectura; delega todo en los repositorios y en el agregador de reportes.
type DashboardUseCase struct {
	products repository.ProductRepository
	alerts   repository.AlertRepository
	reports  MonthStatistics
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, alerts repository.AlertRepository, reports MonthStatistics) *DashboardUseCase {
	return &DashboardUseCase{products: products, alerts: alerts, reports: reports, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Consultas en paralelo:
//  1. Count + CountExpiringWithin(14) → productos
//  2. CountActiveByPriority            → alertas activas
//  3. MonthToDate                      → estadísticas del mes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	type productsResult struct {
		total, expiring int
		err             error
	}
	type alertsResult struct {
		byLevel map[int]int
		err     error
	}
	type statsResult struct {
		stats entity.ReportStatistics
		err   error
	}

	productsCh := make(chan productsResult, 1)
	alertsCh := make(chan alertsResult, 1)
	statsCh := make(chan statsResult, 1)

	go func() {
		total, err := uc.products.Count(ctx)
		if err != nil {
			productsCh <- productsResult{err: err}
			return
		}
		expiring, err := uc.products.CountExpiringWithin(ctx, today, ExpiringHorizonDays)
		productsCh <- productsResult{total, expiring, err}
	}()
	go func() {
		byLevel, err := uc.alerts.CountActiveByPriority(ctx)
		alertsCh <- alertsResult{byLevel, err}
	}()
	go func() {
		stats, err := uc.reports.MonthToDate(ctx)
		statsCh <- statsResult{stats, err}
	}()

	products := <-productsCh
	alerts := <-alertsCh
	stats := <-statsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas activas: %w", alerts.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: estadísticas del mes: %w", stats.err)
	}

	byPriority := make(map[string]int, 4)
	totalActive := 0
	for level := entity.PriorityLow; level <= entity.PriorityCritical; level++ {
		n := alerts.byLevel[level]
		byPriority[strconv.Itoa(level)] = n
		totalActive += n
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:          products.total,
		ExpiringProducts:       products.expiring,
		ActiveAlertsByPriority: byPriority,
		TotalActiveAlerts:      totalActive,
		MonthStatistics:        reportes.ToStatisticsDTO(stats.stats),
		DateLabel:              monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
