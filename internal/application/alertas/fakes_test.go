package alertas_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/safealert/safealert-api/internal/application/alertas"
	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

// ── productos ─────────────────────────────────────────────────────────────────

type fakeProducts struct {
	// métodos no usados: panic si se llaman
	repository.ProductRepository

	expiring []*entity.Product
	err      error
	from, to time.Time
}

func (f *fakeProducts) ListExpiringBetween(_ context.Context, from, to time.Time) ([]*entity.Product, error) {
	f.from, f.to = from, to
	return f.expiring, f.err
}

// ── alertas ───────────────────────────────────────────────────────────────────

type fakeAlerts struct {
	mu          sync.Mutex
	byID        map[string]*entity.Alert
	failInsert  map[string]bool // producto_id -> error al insertar
	lostRace    map[string]bool // producto_id -> CreateIfAbsent devuelve false
	listCalls   int
	failSetStat bool
}

func newFakeAlerts() *fakeAlerts {
	return &fakeAlerts{byID: map[string]*entity.Alert{}, failInsert: map[string]bool{}, lostRace: map[string]bool{}}
}

func (f *fakeAlerts) ExistsActive(_ context.Context, productID, alertType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeLocked(productID, alertType), nil
}

func (f *fakeAlerts) activeLocked(productID, alertType string) bool {
	for _, a := range f.byID {
		if a.ProductID == productID && a.Type == alertType && a.Status == entity.AlertStatusActive {
			return true
		}
	}
	return false
}

func (f *fakeAlerts) CreateIfAbsent(_ context.Context, a *entity.Alert) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert[a.ProductID] {
		return false, errors.New("insert falló")
	}
	if f.lostRace[a.ProductID] || f.activeLocked(a.ProductID, a.Type) {
		return false, nil
	}
	cp := *a
	f.byID[a.ID] = &cp
	return true, nil
}

func (f *fakeAlerts) GetByID(_ context.Context, id string) (*entity.AlertView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &entity.AlertView{Alert: *a}, nil
}

func (f *fakeAlerts) ListActive(_ context.Context) ([]*entity.AlertView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []*entity.AlertView
	for _, a := range f.byID {
		if a.Status == entity.AlertStatusActive {
			out = append(out, &entity.AlertView{Alert: *a})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PriorityLevel != out[j].PriorityLevel {
			return out[i].PriorityLevel > out[j].PriorityLevel
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeAlerts) ListByProduct(_ context.Context, productID string) ([]*entity.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Alert
	for _, a := range f.byID {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlerts) GetStatusForUpdate(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.byID[id]; ok {
		return a.Status, nil
	}
	return "", nil
}

func (f *fakeAlerts) SetStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSetStat {
		return errors.New("update falló")
	}
	f.byID[id].Status = status
	return nil
}

func (f *fakeAlerts) ListResolvedBetween(context.Context, time.Time, time.Time) ([]entity.ResolvedAlert, error) {
	return nil, nil
}

func (f *fakeAlerts) CountActiveByPriority(context.Context) (map[int]int, error) {
	return map[int]int{}, nil
}

func (f *fakeAlerts) countFor(productID string) int {
	n := 0
	for _, a := range f.byID {
		if a.ProductID == productID {
			n++
		}
	}
	return n
}

// ── historial + transacción ───────────────────────────────────────────────────

type fakeHistory struct {
	rows []*entity.AlertStatusChange
	fail bool
}

func (f *fakeHistory) Create(_ context.Context, c *entity.AlertStatusChange) error {
	if f.fail {
		return errors.New("historial falló")
	}
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeHistory) ListByAlert(_ context.Context, alertID string) ([]*entity.AlertStatusChange, error) {
	var out []*entity.AlertStatusChange
	for _, r := range f.rows {
		if r.AlertID == alertID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeTx simula Commit/Rollback restaurando los estados y el historial si fn falla.
type fakeTx struct {
	alerts  *fakeAlerts
	history *fakeHistory
}

func (t *fakeTx) RunAlertStatus(_ context.Context, fn func(repository.AlertRepository, repository.AlertHistoryRepository) error) error {
	snapshot := map[string]string{}
	for id, a := range t.alerts.byID {
		snapshot[id] = a.Status
	}
	nHist := len(t.history.rows)
	if err := fn(t.alerts, t.history); err != nil {
		for id, s := range snapshot {
			t.alerts.byID[id].Status = s
		}
		t.history.rows = t.history.rows[:nHist]
		return err
	}
	return nil
}

// ── puertos opcionales ────────────────────────────────────────────────────────

type fakeLocker struct {
	busy     bool
	err      error
	unlocked bool
}

func (l *fakeLocker) TryLock(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.busy {
		return nil, false, nil
	}
	return func(context.Context) error { l.unlocked = true; return nil }, true, nil
}

type fakePublisher struct {
	events  []string // alerta_id
	names   []string
	batches int
	err     error
}

func (p *fakePublisher) PublishAlertsCreated(_ context.Context, alerts []alertas.CreatedAlert) error {
	p.batches++
	for _, a := range alerts {
		p.events = append(p.events, a.Alert.ID)
		p.names = append(p.names, a.ProductName)
	}
	return p.err
}

type fakeCache struct {
	items       []dto.AlertResponse
	hit         bool
	invalidated int
}

func (c *fakeCache) GetActive(context.Context) ([]dto.AlertResponse, bool, error) {
	return c.items, c.hit, nil
}

func (c *fakeCache) SetActive(_ context.Context, items []dto.AlertResponse) error {
	c.items, c.hit = items, true
	return nil
}

func (c *fakeCache) InvalidateActive(context.Context) error {
	c.items, c.hit = nil, false
	c.invalidated++
	return nil
}

type fakeMetrics struct {
	generated map[int]int
	changes   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{generated: map[int]int{}, changes: map[string]int{}}
}

func (m *fakeMetrics) AlertGenerated(level int) { m.generated[level]++ }
func (m *fakeMetrics) StatusChanged(status string, ok bool) {
	if ok {
		m.changes[status]++
	}
}
