package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertViewQuery = `
	SELECT a.id, a.producto_id, a.tipo_alerta, a.mensaje, a.nivel_prioridad_id, a.fecha_creacion,
		a.fecha_vencimiento, a.estado, a.clasificacion_ia,
		COALESCE(p.nombre, ''), COALESCE(p.codigo_barras, ''),
		COALESCE(p.cantidad_stock, 0), COALESCE(p.precio_unitario, 0),
		COALESCE(np.nombre, ''), COALESCE(np.color_hex, '')
	FROM alertas a
	LEFT JOIN productos p ON a.producto_id = p.id
	LEFT JOIN niveles_prioridad np ON a.nivel_prioridad_id = np.id`

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// ExistsActive indica si ya hay una alerta activa del tipo dado para el producto.
func (r *AlertRepo) ExistsActive(ctx context.Context, productID, alertType string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM alertas WHERE producto_id = $1 AND tipo_alerta = $2 AND estado = 'activa')`,
		productID, alertType,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active alert: %w", err)
	}
	return exists, nil
}

// CreateIfAbsent inserta la alerta; si el índice uq_alertas_activa_producto_tipo ya tiene
// una alerta activa para (producto, tipo) no inserta nada y devuelve created=false.
func (r *AlertRepo) CreateIfAbsent(ctx context.Context, a *entity.Alert) (bool, error) {
	query := `
		INSERT INTO alertas (id, producto_id, tipo_alerta, mensaje, nivel_prioridad_id, fecha_creacion,
			fecha_vencimiento, estado, clasificacion_ia)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (producto_id, tipo_alerta) WHERE estado = 'activa' DO NOTHING`
	var expiry *time.Time
	if a.ExpiryDate != nil {
		d := civilDate(*a.ExpiryDate)
		expiry = &d
	}
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.Type, a.Message, a.PriorityLevel, a.CreatedAt, expiry, a.Status, a.AIClassification,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("producto o nivel de prioridad inexistente: %w", domain.ErrInvalidInput)
		}
		return false, fmt.Errorf("insert alert: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// GetByID alerta enriquecida por ID. nil, nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.AlertView, error) {
	v, err := scanAlertView(r.q.QueryRow(ctx, alertViewQuery+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return v, nil
}

// ListActive alertas activas, más prioritarias y más recientes primero.
func (r *AlertRepo) ListActive(ctx context.Context) ([]*entity.AlertView, error) {
	rows, err := r.q.Query(ctx, alertViewQuery+`
		WHERE a.estado = 'activa'
		ORDER BY a.nivel_prioridad_id DESC, a.fecha_creacion DESC`)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AlertView, 0)
	for rows.Next() {
		v, err := scanAlertView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ListByProduct todas las alertas de un producto, las más recientes primero.
func (r *AlertRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, producto_id, tipo_alerta, mensaje, nivel_prioridad_id, fecha_creacion,
			fecha_vencimiento, estado, clasificacion_ia
		FROM alertas WHERE producto_id = $1
		ORDER BY fecha_creacion DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by product: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Alert, 0)
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Type, &a.Message, &a.PriorityLevel, &a.CreatedAt,
			&a.ExpiryDate, &a.Status, &a.AIClassification); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetStatusForUpdate estado actual con la fila bloqueada. "" si la alerta no existe.
func (r *AlertRepo) GetStatusForUpdate(ctx context.Context, id string) (string, error) {
	var status string
	err := r.q.QueryRow(ctx, `SELECT estado FROM alertas WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("lock alert: %w", err)
	}
	return status, nil
}

// SetStatus cambia el estado de la alerta.
func (r *AlertRepo) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alertas SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		if isUniqueViolation(err) {
			// reactivar una alerta cuando ya hay otra activa para el mismo producto
			return domain.ErrConflict
		}
		return fmt.Errorf("update alert status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListResolvedBetween alertas resueltas creadas en [from, to). Precio y stock en cero si el producto no existe.
func (r *AlertRepo) ListResolvedBetween(ctx context.Context, from, to time.Time) ([]entity.ResolvedAlert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, COALESCE(p.nombre, ''), COALESCE(p.precio_unitario, 0), COALESCE(p.cantidad_stock, 0),
			a.fecha_creacion
		FROM alertas a
		LEFT JOIN productos p ON a.producto_id = p.id
		WHERE a.estado = 'resuelta' AND a.fecha_creacion >= $1 AND a.fecha_creacion < $2
		ORDER BY a.fecha_creacion ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list resolved alerts: %w", err)
	}
	defer rows.Close()
	list := make([]entity.ResolvedAlert, 0)
	for rows.Next() {
		var ra entity.ResolvedAlert
		if err := rows.Scan(&ra.AlertID, &ra.ProductName, &ra.UnitPrice, &ra.StockQuantity, &ra.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resolved alert: %w", err)
		}
		list = append(list, ra)
	}
	return list, rows.Err()
}

// CountActiveByPriority cuenta alertas activas por nivel de prioridad.
func (r *AlertRepo) CountActiveByPriority(ctx context.Context) (map[int]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT nivel_prioridad_id, COUNT(*) FROM alertas WHERE estado = 'activa' GROUP BY nivel_prioridad_id`)
	if err != nil {
		return nil, fmt.Errorf("count active alerts: %w", err)
	}
	defer rows.Close()
	counts := make(map[int]int)
	for rows.Next() {
		var level, n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan alert count: %w", err)
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

func scanAlertView(row pgx.Row) (*entity.AlertView, error) {
	var v entity.AlertView
	err := row.Scan(
		&v.ID, &v.ProductID, &v.Type, &v.Message, &v.PriorityLevel, &v.CreatedAt,
		&v.ExpiryDate, &v.Status, &v.AIClassification,
		&v.ProductName, &v.Barcode, &v.StockQuantity, &v.UnitPrice,
		&v.PriorityName, &v.ColorHex,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
