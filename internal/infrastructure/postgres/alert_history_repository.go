package postgres

import (
	"context"
	"fmt"

	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

var _ repository.AlertHistoryRepository = (*AlertHistoryRepo)(nil)

// AlertHistoryRepo auditoría de cambios de estado sobre alertas_historial.
type AlertHistoryRepo struct {
	q Querier
}

// NewAlertHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertHistoryRepository(q Querier) *AlertHistoryRepo {
	return &AlertHistoryRepo{q: q}
}

func (r *AlertHistoryRepo) Create(ctx context.Context, c *entity.AlertStatusChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alertas_historial (id, alerta_id, estado_anterior, estado_nuevo, comentario, usuario, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.AlertID, c.PreviousStatus, c.NewStatus, c.Comment, c.User, c.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert history: %w", err)
	}
	return nil
}

func (r *AlertHistoryRepo) ListByAlert(ctx context.Context, alertID string) ([]*entity.AlertStatusChange, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, alerta_id, estado_anterior, estado_nuevo, comentario, usuario, fecha
		FROM alertas_historial WHERE alerta_id = $1
		ORDER BY fecha ASC`, alertID)
	if err != nil {
		return nil, fmt.Errorf("list alert history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AlertStatusChange, 0)
	for rows.Next() {
		var c entity.AlertStatusChange
		if err := rows.Scan(&c.ID, &c.AlertID, &c.PreviousStatus, &c.NewStatus, &c.Comment, &c.User, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan alert history: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
