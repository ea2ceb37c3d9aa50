package inventario

import (
	"context"

	"github.com/safealert/safealert-api/internal/domain/repository"
	"github.com/safealert/safealert-api/pkg/logger"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la actualización de stock y el registro del movimiento sean atómicos.
type TxRunner interface {
	RunStockMovement(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// AlertCacheInvalidator la lista de alertas activas embebe nombre, stock y precio del producto;
// toda escritura sobre productos la invalida.
type AlertCacheInvalidator interface {
	InvalidateActive(ctx context.Context) error
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateActive(context.Context) error { return nil }

// alertCacheRef lo embeben los casos de uso que escriben productos.
type alertCacheRef struct {
	alertCache AlertCacheInvalidator
	log        *logger.Logger
}

func newAlertCacheRef() alertCacheRef {
	return alertCacheRef{alertCache: noopInvalidator{}, log: logger.Nop()}
}

func (r *alertCacheRef) set(c AlertCacheInvalidator, log *logger.Logger) {
	if c != nil {
		r.alertCache = c
	}
	if log != nil {
		r.log = log.Component("inventario")
	}
}

// invalidateAlerts un fallo de Redis no revierte la escritura: se registra y el TTL acota lo viejo.
func (r *alertCacheRef) invalidateAlerts(ctx context.Context, productID string) {
	if err := r.alertCache.InvalidateActive(ctx); err != nil {
		r.log.Warn().Err(err).Str("producto_id", productID).Msg("no se pudo invalidar la caché de alertas activas")
	}
}
