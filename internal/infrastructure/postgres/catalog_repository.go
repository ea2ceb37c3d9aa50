package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.StorageRepository  = (*StorageRepo)(nil)
)

// execDelete borra por id y devuelve ErrNotFound si no había fila.
func execDelete(ctx context.Context, q Querier, table, id string) error {
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRepo implementación de CategoryRepository.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categorias (id, nombre, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, descripcion, created_at, updated_at FROM categorias WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categorias SET nombre = $2, descripcion = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, descripcion, created_at, updated_at
		FROM categorias ORDER BY nombre ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, "categorias", id)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierRepo implementación de SupplierRepository.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO proveedores (id, nombre, razon_social, direccion, telefono, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Name, s.LegalName, s.Address, s.Phone, s.Email, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, razon_social, direccion, telefono, email, created_at, updated_at
		FROM proveedores WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.LegalName, &s.Address, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE proveedores SET nombre = $2, razon_social = $3, direccion = $4, telefono = $5, email = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Name, s.LegalName, s.Address, s.Phone, s.Email, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, razon_social, direccion, telefono, email, created_at, updated_at
		FROM proveedores ORDER BY nombre ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.LegalName, &s.Address, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, "proveedores", id)
}

// ── Almacenamientos ───────────────────────────────────────────────────────────

// StorageRepo implementación de StorageRepository.
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador de almacenamientos.
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

func (r *StorageRepo) Create(ctx context.Context, s *entity.Storage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO almacenamientos (id, nombre, descripcion, capacidad, ocupacion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Description, s.Capacity, s.Occupancy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert storage: %w", err)
	}
	return nil
}

func (r *StorageRepo) GetByID(ctx context.Context, id string) (*entity.Storage, error) {
	var s entity.Storage
	err := r.q.QueryRow(ctx, `
		SELECT id, nombre, descripcion, capacidad, ocupacion, created_at, updated_at
		FROM almacenamientos WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Capacity, &s.Occupancy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage: %w", err)
	}
	return &s, nil
}

func (r *StorageRepo) Update(ctx context.Context, s *entity.Storage) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE almacenamientos SET nombre = $2, descripcion = $3, capacidad = $4, ocupacion = $5, updated_at = $6
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Capacity, s.Occupancy, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StorageRepo) List(ctx context.Context, limit, offset int) ([]*entity.Storage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, descripcion, capacidad, ocupacion, created_at, updated_at
		FROM almacenamientos ORDER BY nombre ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storages: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Storage, 0)
	for rows.Next() {
		var s entity.Storage
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Capacity, &s.Occupancy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StorageRepo) Delete(ctx context.Context, id string) error {
	return execDelete(ctx, r.q, "almacenamientos", id)
}
