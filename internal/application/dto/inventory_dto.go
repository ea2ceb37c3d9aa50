package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos.
type RegisterMovementRequest struct {
	ProductID string          `json:"producto_id"`
	Type      string          `json:"tipo"` // entrada, salida
	Quantity  decimal.Decimal `json:"cantidad"`
	Reason    string          `json:"motivo"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"producto_id"`
	Type      string          `json:"tipo"`
	Quantity  decimal.Decimal `json:"cantidad"`
	Reason    string          `json:"motivo"`
	Date      time.Time       `json:"fecha"`
	CreatedBy string          `json:"usuario,omitempty"`
	NewStock  decimal.Decimal `json:"stock_resultante"`
}

// MovementListResponse movimientos de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Catálogos ────────────────────────────────────────────────────────────────

// CategoryRequest entrada para crear/actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierRequest entrada para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name      string `json:"nombre"`
	LegalName string `json:"razon_social"`
	Address   string `json:"direccion"`
	Phone     string `json:"telefono"`
	Email     string `json:"email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	LegalName string    `json:"razon_social"`
	Address   string    `json:"direccion"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StorageRequest entrada para crear/actualizar un almacenamiento.
type StorageRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Capacity    int    `json:"capacidad"`
	Occupancy   int    `json:"ocupacion"`
}

// StorageResponse salida de un almacenamiento.
type StorageResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Capacity    int       `json:"capacidad"`
	Occupancy   int       `json:"ocupacion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
