package repository

import (
	"context"
	"time"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia de alertas.
type AlertRepository interface {
	// ExistsActive indica si ya hay una alerta activa del tipo dado para el producto.
	ExistsActive(ctx context.Context, productID, alertType string) (bool, error)

	// CreateIfAbsent inserta la alerta con ON CONFLICT DO NOTHING sobre el índice
	// único parcial de alertas activas. created=false si otra alerta activa ya existía.
	CreateIfAbsent(ctx context.Context, alert *entity.Alert) (created bool, err error)

	GetByID(ctx context.Context, id string) (*entity.AlertView, error)
	ListActive(ctx context.Context) ([]*entity.AlertView, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error)

	// GetStatusForUpdate devuelve el estado actual bloqueando la fila. "" si no existe.
	GetStatusForUpdate(ctx context.Context, id string) (string, error)
	SetStatus(ctx context.Context, id, status string) error

	// ListResolvedBetween alertas resueltas creadas en [from, to) con precio y stock del producto.
	ListResolvedBetween(ctx context.Context, from, to time.Time) ([]entity.ResolvedAlert, error)

	// CountActiveByPriority mapa nivel (1..4) -> alertas activas.
	CountActiveByPriority(ctx context.Context) (map[int]int, error)
}

// AlertHistoryRepository auditoría de cambios de estado (alertas_historial).
type AlertHistoryRepository interface {
	Create(ctx context.Context, change *entity.AlertStatusChange) error
	ListByAlert(ctx context.Context, alertID string) ([]*entity.AlertStatusChange, error)
}
