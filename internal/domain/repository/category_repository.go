package repository

import (
	"context"

	"github.com/safealert/safealert-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}

// StorageRepository define el puerto de persistencia para Storage.
type StorageRepository interface {
	Create(ctx context.Context, storage *entity.Storage) error
	GetByID(ctx context.Context, id string) (*entity.Storage, error)
	Update(ctx context.Context, storage *entity.Storage) error
	List(ctx context.Context, limit, offset int) ([]*entity.Storage, error)
	Delete(ctx context.Context, id string) error
}
