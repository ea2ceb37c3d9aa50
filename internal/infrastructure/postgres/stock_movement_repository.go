package postgres

import (
	"context"
	"fmt"

	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre movimientos_stock.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento. No actualiza el stock del producto; eso lo hace el use case en la misma tx.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO movimientos_stock (id, producto_id, tipo, cantidad, motivo, fecha, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.Date, nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto o usuario inexistente: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, los más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, producto_id, tipo, cantidad, motivo, fecha, COALESCE(usuario_id::text, '')
		FROM movimientos_stock WHERE producto_id = $1
		ORDER BY fecha DESC LIMIT $2 OFFSET $3`, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Date, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
