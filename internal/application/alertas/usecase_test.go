package alertas_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safealert/safealert-api/internal/application/alertas"
	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
)

var fixedNow = time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)

type harness struct {
	products  *fakeProducts
	alerts    *fakeAlerts
	history   *fakeHistory
	locker    *fakeLocker
	publisher *fakePublisher
	cache     *fakeCache
	metrics   *fakeMetrics
	uc        *alertas.AlertUseCase
}

func newHarness(products ...*entity.Product) *harness {
	h := &harness{
		products:  &fakeProducts{expiring: products},
		alerts:    newFakeAlerts(),
		history:   &fakeHistory{},
		locker:    &fakeLocker{},
		publisher: &fakePublisher{},
		cache:     &fakeCache{},
		metrics:   newFakeMetrics(),
	}
	h.uc = alertas.NewAlertUseCase(alertas.Deps{
		Products:  h.products,
		Alerts:    h.alerts,
		History:   h.history,
		TxRunner:  &fakeTx{alerts: h.alerts, history: h.history},
		Locker:    h.locker,
		Publisher: h.publisher,
		Cache:     h.cache,
		Metrics:   h.metrics,
		Now:       func() time.Time { return fixedNow },
	})
	return h
}

func product(id, name string, daysAhead int, stock, price float64) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          name,
		ExpiryDate:    time.Date(2026, 10, 19+daysAhead, 0, 0, 0, 0, time.UTC),
		StockQuantity: decimal.NewFromFloat(stock),
		UnitPrice:     decimal.NewFromFloat(price),
		Status:        entity.ProductStatusActive,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Generate
// ─────────────────────────────────────────────────────────────────────────────

func TestGenerate_CreaAlertasConPrioridadYMensaje(t *testing.T) {
	h := newHarness(
		product("p1", "Leche entera", 0, 60, 10),
		product("p2", "Pan tajado", 10, 3, 1),
	)

	resp, err := h.uc.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, resp.Generated)
	require.Len(t, resp.Alerts, 2)

	leche, pan := resp.Alerts[0], resp.Alerts[1]
	assert.Equal(t, "p1", leche.ProductID)
	assert.Equal(t, entity.PriorityCritical, leche.PriorityLevel)
	assert.Equal(t, "¡URGENTE! El producto 'Leche entera' ya ha vencido", leche.Message)
	assert.Equal(t, entity.AlertStatusActive, leche.Status)
	assert.Equal(t, entity.AlertTypeExpiry, leche.Type)
	require.NotNil(t, leche.ExpiryDate)
	assert.Equal(t, "2026-10-19", *leche.ExpiryDate)
	assert.Contains(t, leche.AIClassification, "CRÍTICA")
	assert.Equal(t, "Leche entera", leche.ProductName)

	assert.Equal(t, entity.PriorityLow, pan.PriorityLevel)
	assert.Equal(t, "El producto 'Pan tajado' vence en 10 días - Monitorear", pan.Message)

	assert.Len(t, h.publisher.events, 2)
	assert.Equal(t, 1, h.publisher.batches, "una corrida publica un solo lote")
	assert.ElementsMatch(t, []string{"Leche entera", "Pan tajado"}, h.publisher.names)
	assert.Equal(t, 1, h.cache.invalidated)
	assert.Equal(t, 1, h.metrics.generated[entity.PriorityCritical])
	assert.Equal(t, 1, h.metrics.generated[entity.PriorityLow])
	assert.True(t, h.locker.unlocked)
}

func TestGenerate_ConsultaHorizonteDeCatorceDias(t *testing.T) {
	h := newHarness()

	_, err := h.uc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), h.products.from)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), h.products.to)
}

func TestGenerate_NoDuplicaAlertaActiva(t *testing.T) {
	h := newHarness(product("p1", "Yogur", 2, 10, 3))

	first, err := h.uc.Generate(context.Background())
	require.NoError(t, err)
	second, err := h.uc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Generated)
	assert.Equal(t, 0, second.Generated)
	assert.NotNil(t, second.Alerts)
	assert.Empty(t, second.Alerts)
	assert.Equal(t, 1, h.alerts.countFor("p1"))
	// sin alertas nuevas no se toca la caché
	assert.Equal(t, 1, h.cache.invalidated)
}

func TestGenerate_AlertaResueltaPermiteNuevaAlerta(t *testing.T) {
	h := newHarness(product("p1", "Queso", 5, 10, 3))

	first, err := h.uc.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Alerts, 1)

	ok := h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{
		AlertID: first.Alerts[0].ID, Status: entity.AlertStatusResolved,
	})
	require.True(t, ok)

	second, err := h.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Generated)
	assert.Equal(t, 2, h.alerts.countFor("p1"))
}

func TestGenerate_CarreraEntreVerificacionEInsert(t *testing.T) {
	h := newHarness(product("p1", "Jamón", 1, 10, 3))
	h.alerts.lostRace["p1"] = true

	resp, err := h.uc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Generated)
	assert.Empty(t, h.publisher.events)
}

func TestGenerate_FalloDeInsertNoDetieneCorrida(t *testing.T) {
	h := newHarness(
		product("p1", "Huevos", 3, 10, 3),
		product("p2", "Tomate", 4, 10, 3),
	)
	h.alerts.failInsert["p1"] = true

	resp, err := h.uc.Generate(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, resp.Generated)
	assert.Equal(t, "p2", resp.Alerts[0].ProductID)
}

func TestGenerate_ErrorDePublicacionNoFallaLaCorrida(t *testing.T) {
	h := newHarness(product("p1", "Huevos", 3, 10, 3))
	h.publisher.err = errors.New("broker caído")

	resp, err := h.uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
}

func TestGenerate_ErrorListandoProductos(t *testing.T) {
	h := newHarness()
	h.products.err = errors.New("db caída")

	_, err := h.uc.Generate(context.Background())
	assert.Error(t, err)
}

func TestGenerate_LockOcupado(t *testing.T) {
	h := newHarness(product("p1", "Huevos", 3, 10, 3))
	h.locker.busy = true

	_, err := h.uc.Generate(context.Background())
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 0, h.alerts.countFor("p1"))
}

func TestGenerate_SinPuertosOpcionales(t *testing.T) {
	al := newFakeAlerts()
	hist := &fakeHistory{}
	uc := alertas.NewAlertUseCase(alertas.Deps{
		Products: &fakeProducts{expiring: []*entity.Product{product("p1", "Arepa", 1, 1, 1)}},
		Alerts:   al,
		History:  hist,
		TxRunner: &fakeTx{alerts: al, history: hist},
	})

	resp, err := uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
}

func TestExpiryMessage(t *testing.T) {
	cases := map[int]string{
		-3: "¡URGENTE! El producto 'Leche' ya ha vencido",
		0:  "¡URGENTE! El producto 'Leche' ya ha vencido",
		1:  "¡CRÍTICO! El producto 'Leche' vence mañana",
		2:  "El producto 'Leche' vence en 2 días",
		3:  "El producto 'Leche' vence en 3 días",
		4:  "El producto 'Leche' vence en 4 días - Monitorear",
		14: "El producto 'Leche' vence en 14 días - Monitorear",
	}
	for days, want := range cases {
		assert.Equal(t, want, alertas.ExpiryMessage("Leche", days), "días=%d", days)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateStatus / History
// ─────────────────────────────────────────────────────────────────────────────

func seedAlert(h *harness) string {
	resp, err := h.uc.Generate(context.Background())
	if err != nil || len(resp.Alerts) == 0 {
		panic("no se pudo sembrar la alerta")
	}
	return resp.Alerts[0].ID
}

func TestUpdateStatus_RegistraHistorial(t *testing.T) {
	h := newHarness(product("p1", "Leche", 2, 10, 3))
	id := seedAlert(h)

	ok := h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{
		AlertID: id, Status: entity.AlertStatusInProgress, Comment: "en promoción",
	})
	require.True(t, ok)

	assert.Equal(t, entity.AlertStatusInProgress, h.alerts.byID[id].Status)
	require.Len(t, h.history.rows, 1)
	row := h.history.rows[0]
	assert.Equal(t, entity.AlertStatusActive, row.PreviousStatus)
	assert.Equal(t, entity.AlertStatusInProgress, row.NewStatus)
	assert.Equal(t, "en promoción", row.Comment)
	assert.Equal(t, "sistema", row.User)
	assert.Equal(t, 1, h.metrics.changes[entity.AlertStatusInProgress])

	hist, err := h.uc.History(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, hist.History, 1)
	assert.Equal(t, "sistema", hist.History[0].User)
}

func TestUpdateStatus_UsuarioExplicito(t *testing.T) {
	h := newHarness(product("p1", "Leche", 2, 10, 3))
	id := seedAlert(h)

	ok := h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{
		AlertID: id, Status: entity.AlertStatusResolved, User: "ana",
	})
	require.True(t, ok)
	assert.Equal(t, "ana", h.history.rows[0].User)
}

func TestUpdateStatus_AlertaInexistente(t *testing.T) {
	h := newHarness()

	ok := h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{
		AlertID: "no-existe", Status: entity.AlertStatusResolved,
	})
	assert.False(t, ok)
	assert.Empty(t, h.history.rows)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	h := newHarness(product("p1", "Leche", 2, 10, 3))
	id := seedAlert(h)

	assert.False(t, h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{AlertID: id, Status: "cerrada"}))
	assert.False(t, h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{Status: entity.AlertStatusResolved}))
	assert.Equal(t, entity.AlertStatusActive, h.alerts.byID[id].Status)
}

func TestUpdateStatus_FalloEnHistorialHaceRollback(t *testing.T) {
	h := newHarness(product("p1", "Leche", 2, 10, 3))
	id := seedAlert(h)
	h.history.fail = true

	ok := h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{
		AlertID: id, Status: entity.AlertStatusResolved,
	})
	assert.False(t, ok)
	assert.Equal(t, entity.AlertStatusActive, h.alerts.byID[id].Status)
}

func TestHistory_AlertaInexistente(t *testing.T) {
	h := newHarness()

	_, err := h.uc.History(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// ListActive
// ─────────────────────────────────────────────────────────────────────────────

func TestListActive_LeeDeCacheEnLaSegundaLlamada(t *testing.T) {
	h := newHarness(
		product("p1", "Leche", 0, 60, 10),
		product("p2", "Pan", 10, 3, 1),
	)
	seedAlert(h)

	first, err := h.uc.ListActive(context.Background())
	require.NoError(t, err)
	second, err := h.uc.ListActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, h.alerts.listCalls)
	require.Len(t, first.Alerts, 2)
	assert.Equal(t, first.Alerts, second.Alerts)
	// prioridad descendente
	assert.Equal(t, entity.PriorityCritical, first.Alerts[0].PriorityLevel)
}

func TestListActive_CambioDeEstadoInvalidaCache(t *testing.T) {
	h := newHarness(product("p1", "Leche", 2, 10, 3))
	id := seedAlert(h)

	list, err := h.uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Alerts, 1)

	require.True(t, h.uc.UpdateStatus(context.Background(), dto.UpdateAlertStatusRequest{
		AlertID: id, Status: entity.AlertStatusDismissed,
	}))

	list, err = h.uc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Alerts)
	assert.Equal(t, 2, h.alerts.listCalls)
}
