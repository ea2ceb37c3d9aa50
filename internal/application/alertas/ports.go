package alertas

import (
	"context"
	"time"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace Rollback.
type TxRunner interface {
	RunAlertStatus(ctx context.Context, fn func(
		alertRepo repository.AlertRepository,
		historyRepo repository.AlertHistoryRepository,
	) error) error
}

// Locker lock distribuido para serializar corridas del generador entre instancias.
// ok=false si otro proceso tiene el lock.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

// CreatedAlert alerta nueva junto al nombre del producto, para el evento alerta.creada.
type CreatedAlert struct {
	Alert       *entity.Alert
	ProductName string
}

// EventPublisher publica los eventos de una corrida del generador en un solo envío.
type EventPublisher interface {
	PublishAlertsCreated(ctx context.Context, alerts []CreatedAlert) error
}

// AlertCache caché de la lista de alertas activas.
type AlertCache interface {
	GetActive(ctx context.Context) (alerts []dto.AlertResponse, hit bool, err error)
	SetActive(ctx context.Context, alerts []dto.AlertResponse) error
	InvalidateActive(ctx context.Context) error
}

// Metrics contadores del módulo de alertas.
type Metrics interface {
	AlertGenerated(priorityLevel int)
	StatusChanged(status string, ok bool)
}

// ── Implementaciones vacías para cuando Redis/Kafka/Prometheus no están configurados ──

type noopLocker struct{}

func (noopLocker) TryLock(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishAlertsCreated(context.Context, []CreatedAlert) error { return nil }

type noopCache struct{}

func (noopCache) GetActive(context.Context) ([]dto.AlertResponse, bool, error) {
	return nil, false, nil
}
func (noopCache) SetActive(context.Context, []dto.AlertResponse) error { return nil }
func (noopCache) InvalidateActive(context.Context) error               { return nil }

type noopMetrics struct{}

func (noopMetrics) AlertGenerated(int)         {}
func (noopMetrics) StatusChanged(string, bool) {}
