package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"nombre" validate:"required,min=2,max=100"`
	Description   string          `json:"descripcion"`
	Barcode       string          `json:"codigo_barras"`
	ExpiryDate    string          `json:"fecha_caducidad" validate:"required"` // YYYY-MM-DD
	StockQuantity decimal.Decimal `json:"cantidad_stock"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	CategoryID    string          `json:"categoria_id"`
	SupplierID    string          `json:"proveedor_id"`
	StorageID     string          `json:"almacenamiento_id"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se maneja vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=2,max=100"`
	Description *string          `json:"descripcion"`
	Barcode     *string          `json:"codigo_barras"`
	ExpiryDate  *string          `json:"fecha_caducidad"`
	UnitPrice   *decimal.Decimal `json:"precio_unitario"`
	Status      *string          `json:"estado"`
	CategoryID  *string          `json:"categoria_id"`
	SupplierID  *string          `json:"proveedor_id"`
	StorageID   *string          `json:"almacenamiento_id"`
}

// ProductListRequest filtros de GET /api/inventario/productos.
type ProductListRequest struct {
	PageRequest
	Status     string `query:"estado"`
	CategoryID string `query:"categoria_id"`
	Search     string `query:"q"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"nombre"`
	Description      string          `json:"descripcion"`
	Barcode          string          `json:"codigo_barras"`
	ExpiryDate       string          `json:"fecha_caducidad"`
	DaysRemaining    int             `json:"dias_restantes"`
	StockQuantity    decimal.Decimal `json:"cantidad_stock"`
	UnitPrice        decimal.Decimal `json:"precio_unitario"`
	Status           string          `json:"estado"`
	AIClassification string          `json:"clasificacion_ia"`
	CategoryID       string          `json:"categoria_id,omitempty"`
	SupplierID       string          `json:"proveedor_id,omitempty"`
	StorageID        string          `json:"almacenamiento_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ClassifyProductsResponse resultado de POST /api/inventario/productos/clasificar.
type ClassifyProductsResponse struct {
	Activos        int `json:"activos"`
	ProximoVencer  int `json:"proximo_vencer"`
	Vencidos       int `json:"vencidos"`
	TotalRevisados int `json:"total_revisados"`
}
