package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safealert/safealert-api/internal/application/alertas"
	"github.com/safealert/safealert-api/internal/application/inventario"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

// Ensure TxRunner implements alertas.TxRunner and inventario.TxRunner.
var _ alertas.TxRunner = (*TxRunner)(nil)
var _ inventario.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAlertStatus transacción con repos de alertas e historial (cambio de estado + auditoría).
func (r *TxRunner) RunAlertStatus(ctx context.Context, fn func(
	alertRepo repository.AlertRepository,
	historyRepo repository.AlertHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewAlertRepository(tx), NewAlertHistoryRepository(tx))
	})
}

// RunStockMovement transacción con repos de productos y movimientos (registro de entrada/salida).
func (r *TxRunner) RunStockMovement(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewStockMovementRepository(tx))
	})
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
