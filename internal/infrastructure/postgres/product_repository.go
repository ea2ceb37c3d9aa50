package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	id, nombre, descripcion, codigo_barras, fecha_caducidad, cantidad_stock, precio_unitario,
	estado, clasificacion_ia,
	COALESCE(categoria_id::text, ''), COALESCE(proveedor_id::text, ''), COALESCE(almacenamiento_id::text, ''),
	created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (id, nombre, descripcion, codigo_barras, fecha_caducidad, cantidad_stock,
			precio_unitario, estado, clasificacion_ia, categoria_id, proveedor_id, almacenamiento_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Barcode, civilDate(p.ExpiryDate), p.StockQuantity,
		p.UnitPrice, p.Status, p.AIClassification,
		nullIfEmpty(p.CategoryID), nullIfEmpty(p.SupplierID), nullIfEmpty(p.StorageID),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría, proveedor o almacenamiento inexistente: %w", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("stock o precio negativo: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos editables del producto. El stock no se toca aquí (ver UpdateStock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, codigo_barras = $4, fecha_caducidad = $5,
			precio_unitario = $6, estado = $7, clasificacion_ia = $8, categoria_id = $9,
			proveedor_id = $10, almacenamiento_id = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Barcode, civilDate(p.ExpiryDate), p.UnitPrice, p.Status,
		p.AIClassification, nullIfEmpty(p.CategoryID), nullIfEmpty(p.SupplierID), nullIfEmpty(p.StorageID),
		p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("categoría, proveedor o almacenamiento inexistente: %w", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("precio o estado fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija la cantidad en stock (usado por el registro de movimientos).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET cantidad_stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros opcionales y devuelve además el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("categoria_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(nombre ILIKE $%d OR codigo_barras ILIKE $%d)", len(args), len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + productColumns + ` FROM productos` + where +
		fmt.Sprintf(" ORDER BY fecha_caducidad ASC, nombre ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	list, err := r.queryList(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete elimina un producto por ID. Las alertas y movimientos se borran en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpiringBetween productos activos o próximos a vencer con caducidad en [from, to].
func (r *ProductRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM productos
		WHERE fecha_caducidad BETWEEN $1 AND $2
		  AND estado IN ('activo', 'proximo_vencer')
		ORDER BY fecha_caducidad ASC`
	return r.queryList(ctx, query, civilDate(from), civilDate(to))
}

// RefreshStatuses recalcula el estado de todos los productos en una sola sentencia.
func (r *ProductRepo) RefreshStatuses(ctx context.Context, today time.Time, expiringWithinDays int) (map[string]int, error) {
	day := civilDate(today)
	_, err := r.q.Exec(ctx, `
		UPDATE productos SET
			estado = CASE
				WHEN fecha_caducidad < $1 THEN 'vencido'
				WHEN fecha_caducidad <= $2 THEN 'proximo_vencer'
				ELSE 'activo'
			END,
			updated_at = now()
		WHERE estado IS DISTINCT FROM CASE
				WHEN fecha_caducidad < $1 THEN 'vencido'
				WHEN fecha_caducidad <= $2 THEN 'proximo_vencer'
				ELSE 'activo'
			END`,
		day, day.AddDate(0, 0, expiringWithinDays),
	)
	if err != nil {
		return nil, fmt.Errorf("refresh product statuses: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT estado, COUNT(*) FROM productos GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("count product statuses: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{
		entity.ProductStatusActive:       0,
		entity.ProductStatusExpiringSoon: 0,
		entity.ProductStatusExpired:      0,
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// Count total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountExpiringWithin productos no vencidos con caducidad en [today, today+days].
func (r *ProductRepo) CountExpiringWithin(ctx context.Context, today time.Time, days int) (int, error) {
	day := civilDate(today)
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM productos WHERE fecha_caducidad BETWEEN $1 AND $2 AND estado <> 'vencido'`,
		day, day.AddDate(0, 0, days),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expiring products: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Barcode, &p.ExpiryDate, &p.StockQuantity, &p.UnitPrice,
		&p.Status, &p.AIClassification, &p.CategoryID, &p.SupplierID, &p.StorageID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
