package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

// ProductFilter filtros opcionales para listar productos.
type ProductFilter struct {
	Status     string // vacío = todos
	CategoryID string
	Search     string // coincide con nombre o código de barras (ILIKE)
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error

	// ListExpiringBetween productos con fecha_caducidad en [from, to] y estado activo o proximo_vencer,
	// ordenados por fecha de caducidad. Es la entrada del generador de alertas.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error)

	// RefreshStatuses recalcula estado de todos los productos respecto a today.
	// Devuelve cuántos quedaron en cada estado.
	RefreshStatuses(ctx context.Context, today time.Time, expiringWithinDays int) (map[string]int, error)

	// Count total de productos; CountExpiringWithin los que vencen entre today y today+days.
	Count(ctx context.Context) (int, error)
	CountExpiringWithin(ctx context.Context, today time.Time, days int) (int, error)
}
