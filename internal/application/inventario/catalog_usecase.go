package inventario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
)

// CatalogUseCase CRUD de categorías, proveedores y almacenamientos.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	storages   repository.StorageRepository
	now        func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	storages repository.StorageRepository,
) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, suppliers: suppliers, storages: storages, now: time.Now}
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	return name, nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategory crea una categoría. domain.ErrDuplicate si el nombre ya existe.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Category{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetCategory nil, nil si no existe.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// UpdateCategory nil, nil si no existe.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Name, c.Description, c.UpdatedAt = name, in.Description, uc.now()
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	page.DefaultPage()
	list, err := uc.categories.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.categories.Delete(ctx, id)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func validateSupplier(in dto.SupplierRequest) (string, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return "", err
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return name, nil
}

// CreateSupplier crea un proveedor.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name, err := validateSupplier(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		LegalName: in.LegalName,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *CatalogUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *CatalogUseCase) UpdateSupplier(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	name, err := validateSupplier(in)
	if err != nil {
		return nil, err
	}
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	s.Name, s.LegalName, s.Address, s.Phone, s.Email = name, in.LegalName, in.Address, in.Phone, in.Email
	s.UpdatedAt = uc.now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.suppliers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *CatalogUseCase) DeleteSupplier(ctx context.Context, id string) error {
	return uc.suppliers.Delete(ctx, id)
}

// ── Almacenamientos ───────────────────────────────────────────────────────────

func validateStorage(in dto.StorageRequest) (string, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return "", err
	}
	if in.Capacity < 0 || in.Occupancy < 0 {
		return "", fmt.Errorf("%w: capacidad y ocupacion no pueden ser negativas", domain.ErrInvalidInput)
	}
	if in.Capacity > 0 && in.Occupancy > in.Capacity {
		return "", fmt.Errorf("%w: ocupacion supera la capacidad", domain.ErrInvalidInput)
	}
	return name, nil
}

// CreateStorage crea un almacenamiento.
func (uc *CatalogUseCase) CreateStorage(ctx context.Context, in dto.StorageRequest) (*dto.StorageResponse, error) {
	name, err := validateStorage(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Storage{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Capacity:    in.Capacity,
		Occupancy:   in.Occupancy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.storages.Create(ctx, s); err != nil {
		return nil, err
	}
	return toStorageResponse(s), nil
}

func (uc *CatalogUseCase) GetStorage(ctx context.Context, id string) (*dto.StorageResponse, error) {
	s, err := uc.storages.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toStorageResponse(s), nil
}

func (uc *CatalogUseCase) UpdateStorage(ctx context.Context, id string, in dto.StorageRequest) (*dto.StorageResponse, error) {
	name, err := validateStorage(in)
	if err != nil {
		return nil, err
	}
	s, err := uc.storages.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	s.Name, s.Description, s.Capacity, s.Occupancy = name, in.Description, in.Capacity, in.Occupancy
	s.UpdatedAt = uc.now()
	if err := uc.storages.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStorageResponse(s), nil
}

func (uc *CatalogUseCase) ListStorages(ctx context.Context, page dto.PageRequest) ([]dto.StorageResponse, error) {
	page.DefaultPage()
	list, err := uc.storages.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorageResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStorageResponse(s))
	}
	return out, nil
}

func (uc *CatalogUseCase) DeleteStorage(ctx context.Context, id string) error {
	return uc.storages.Delete(ctx, id)
}

// ── mapeos ────────────────────────────────────────────────────────────────────

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		LegalName: s.LegalName,
		Address:   s.Address,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toStorageResponse(s *entity.Storage) *dto.StorageResponse {
	return &dto.StorageResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Capacity:    s.Capacity,
		Occupancy:   s.Occupancy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
