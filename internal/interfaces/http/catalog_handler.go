package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/logger"
)

// CatalogService lo cumple inventario.CatalogUseCase.
type CatalogService interface {
	CreateCategory(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, page dto.PageRequest) ([]dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error)
	GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error)
	UpdateSupplier(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error)
	ListSuppliers(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error)
	DeleteSupplier(ctx context.Context, id string) error

	CreateStorage(ctx context.Context, in dto.StorageRequest) (*dto.StorageResponse, error)
	GetStorage(ctx context.Context, id string) (*dto.StorageResponse, error)
	UpdateStorage(ctx context.Context, id string, in dto.StorageRequest) (*dto.StorageResponse, error)
	ListStorages(ctx context.Context, page dto.PageRequest) ([]dto.StorageResponse, error)
	DeleteStorage(ctx context.Context, id string) error
}

// CatalogHandler maneja categorías, proveedores y almacenamientos.
type CatalogHandler struct {
	base
	svc CatalogService
}

// NewCatalogHandler construye el handler de catálogos.
func NewCatalogHandler(svc CatalogService, log *logger.Logger, dev bool) *CatalogHandler {
	return &CatalogHandler{base: newBase(log, dev), svc: svc}
}

// Los tres catálogos comparten la forma de responder; estas funciones evitan repetirla.

func createJSON[Req, Res any](h *CatalogHandler, c *fiber.Ctx, fn func(context.Context, Req) (*Res, error)) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := fn(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func getJSON[Res any](h *CatalogHandler, c *fiber.Ctx, notFound string, fn func(context.Context, string) (*Res, error)) error {
	out, err := fn(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	}
	return c.JSON(out)
}

func updateJSON[Req, Res any](h *CatalogHandler, c *fiber.Ctx, notFound string, fn func(context.Context, string, Req) (*Res, error)) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := fn(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	}
	return c.JSON(out)
}

func listJSON[Res any](h *CatalogHandler, c *fiber.Ctx, fn func(context.Context, dto.PageRequest) ([]Res, error)) error {
	page := pageFromQuery(c)
	items, err := fn(c.UserContext(), page)
	if err != nil {
		return h.fail(c, err)
	}
	if items == nil {
		items = []Res{}
	}
	return c.JSON(fiber.Map{"items": items, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

func (h *CatalogHandler) deleteByID(c *fiber.Ctx, fn func(context.Context, string) error) error {
	if err := fn(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "nombre, descripcion"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/categorias [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	return createJSON(h, c, h.svc.CreateCategory)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalogos
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/inventario/categorias [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return listJSON(h, c, h.svc.ListCategories)
}

// GetCategory godoc
// @Summary      Obtener categoría
// @Tags         catalogos
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/categorias/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	return getJSON(h, c, "categoría no encontrada", h.svc.GetCategory)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID"
// @Param        body  body  dto.CategoryRequest  true  "nombre, descripcion"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/categorias/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	return updateJSON(h, c, "categoría no encontrada", h.svc.UpdateCategory)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Description  Los productos de la categoría quedan sin categoría.
// @Tags         catalogos
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/categorias/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	return h.deleteByID(c, h.svc.DeleteCategory)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/proveedores [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	return createJSON(h, c, h.svc.CreateSupplier)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         catalogos
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/inventario/proveedores [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	return listJSON(h, c, h.svc.ListSuppliers)
}

// GetSupplier godoc
// @Summary      Obtener proveedor
// @Tags         catalogos
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/proveedores/{id} [get]
func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	return getJSON(h, c, "proveedor no encontrado", h.svc.GetSupplier)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID"
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/proveedores/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	return updateJSON(h, c, "proveedor no encontrado", h.svc.UpdateSupplier)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor
// @Tags         catalogos
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/proveedores/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	return h.deleteByID(c, h.svc.DeleteSupplier)
}

// CreateStorage godoc
// @Summary      Crear almacenamiento
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StorageRequest  true  "nombre, descripcion, capacidad, ocupacion"
// @Success      201   {object}  dto.StorageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/almacenamientos [post]
func (h *CatalogHandler) CreateStorage(c *fiber.Ctx) error {
	return createJSON(h, c, h.svc.CreateStorage)
}

// ListStorages godoc
// @Summary      Listar almacenamientos
// @Tags         catalogos
// @Produce      json
// @Success      200  {array}  dto.StorageResponse
// @Router       /api/inventario/almacenamientos [get]
func (h *CatalogHandler) ListStorages(c *fiber.Ctx) error {
	return listJSON(h, c, h.svc.ListStorages)
}

// GetStorage godoc
// @Summary      Obtener almacenamiento
// @Tags         catalogos
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.StorageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/almacenamientos/{id} [get]
func (h *CatalogHandler) GetStorage(c *fiber.Ctx) error {
	return getJSON(h, c, "almacenamiento no encontrado", h.svc.GetStorage)
}

// UpdateStorage godoc
// @Summary      Actualizar almacenamiento
// @Tags         catalogos
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID"
// @Param        body  body  dto.StorageRequest  true  "nombre, descripcion, capacidad, ocupacion"
// @Success      200   {object}  dto.StorageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/almacenamientos/{id} [put]
func (h *CatalogHandler) UpdateStorage(c *fiber.Ctx) error {
	return updateJSON(h, c, "almacenamiento no encontrado", h.svc.UpdateStorage)
}

// DeleteStorage godoc
// @Summary      Eliminar almacenamiento
// @Tags         catalogos
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/almacenamientos/{id} [delete]
func (h *CatalogHandler) DeleteStorage(c *fiber.Ctx) error {
	return h.deleteByID(c, h.svc.DeleteStorage)
}
