// Package inventario contiene los casos de uso de productos, catálogos y movimientos de stock.
package inventario

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
	"github.com/safealert/safealert-api/pkg/logger"
)

const (
	dateLayout = "2006-01-02"

	// DefaultExpiringDays horizonte por defecto de GET /productos/proximos-vencer.
	DefaultExpiringDays = 30
	// ExpiringSoonDays un producto con caducidad dentro de este rango queda en proximo_vencer.
	ExpiringSoonDays = 7
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	alertCacheRef
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{alertCacheRef: newAlertCacheRef(), repo: repo, now: time.Now}
}

// WithAlertCache invalida la caché de alertas activas tras Update y Delete.
func (uc *ProductUseCase) WithAlertCache(c AlertCacheInvalidator, log *logger.Logger) *ProductUseCase {
	uc.set(c, log)
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// Create crea un nuevo producto en estado activo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	expiry, err := parseDate("fecha_caducidad", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if in.StockQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad_stock no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio_unitario no puede ser negativo", domain.ErrInvalidInput)
	}

	now := uc.now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             name,
		Description:      in.Description,
		Barcode:          strings.TrimSpace(in.Barcode),
		ExpiryDate:       expiry,
		StockQuantity:    in.StockQuantity,
		UnitPrice:        in.UnitPrice,
		Status:           entity.ProductStatusActive,
		AIClassification: "Producto agregado - " + now.Format("02/01/2006"),
		CategoryID:       in.CategoryID,
		SupplierID:       in.SupplierID,
		StorageID:        in.StorageID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.ExpiryDate != nil {
		expiry, err := parseDate("fecha_caducidad", *in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		product.ExpiryDate = expiry
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio_unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Status != nil {
		if !entity.IsValidProductStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado inválido: %s", domain.ErrInvalidInput, *in.Status)
		}
		product.Status = *in.Status
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.StorageID != nil {
		product.StorageID = *in.StorageID
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidateAlerts(ctx, product.ID)
	return uc.toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	if in.Status != "" && !entity.IsValidProductStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado inválido: %s", domain.ErrInvalidInput, in.Status)
	}
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Status:     in.Status,
		CategoryID: in.CategoryID,
		Search:     strings.TrimSpace(in.Search),
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ExpiringWithin productos que vencen entre hoy y hoy+days (days <= 0 usa el valor por defecto).
func (uc *ProductUseCase) ExpiringWithin(ctx context.Context, days int) (*dto.ProductListResponse, error) {
	if days <= 0 {
		days = DefaultExpiringDays
	}
	today := civilDate(uc.now())
	list, err := uc.repo.ListExpiringBetween(ctx, today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Offset: 0, Total: len(items)},
	}, nil
}

// Classify recalcula el estado de todos los productos: vencido si la fecha ya pasó,
// proximo_vencer si vence en 7 días o menos, activo en otro caso.
func (uc *ProductUseCase) Classify(ctx context.Context) (*dto.ClassifyProductsResponse, error) {
	counts, err := uc.repo.RefreshStatuses(ctx, civilDate(uc.now()), ExpiringSoonDays)
	if err != nil {
		return nil, fmt.Errorf("inventario: clasificar productos: %w", err)
	}
	resp := &dto.ClassifyProductsResponse{
		Activos:       counts[entity.ProductStatusActive],
		ProximoVencer: counts[entity.ProductStatusExpiringSoon],
		Vencidos:      counts[entity.ProductStatusExpired],
	}
	resp.TotalRevisados = resp.Activos + resp.ProximoVencer + resp.Vencidos
	return resp, nil
}

// Delete elimina un producto por ID. domain.ErrNotFound si no existe.
// Sus alertas caen por ON DELETE CASCADE.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateAlerts(ctx, id)
	return nil
}

// StatusFor estado que corresponde a una fecha de caducidad respecto a today.
func StatusFor(expiry, today time.Time) string {
	days := entity.DaysBetween(today, expiry)
	switch {
	case days < 0:
		return entity.ProductStatusExpired
	case days <= ExpiringSoonDays:
		return entity.ProductStatusExpiringSoon
	default:
		return entity.ProductStatusActive
	}
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 100 {
		return fmt.Errorf("%w: nombre debe tener entre 2 y 100 caracteres", domain.ErrInvalidInput)
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: %s es requerida", domain.ErrInvalidInput, field)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Barcode:          p.Barcode,
		ExpiryDate:       p.ExpiryDate.Format(dateLayout),
		DaysRemaining:    p.DaysUntilExpiry(uc.now()),
		StockQuantity:    p.StockQuantity,
		UnitPrice:        p.UnitPrice,
		Status:           p.Status,
		AIClassification: p.AIClassification,
		CategoryID:       p.CategoryID,
		SupplierID:       p.SupplierID,
		StorageID:        p.StorageID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
