package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/logger"
)

// ProductService lo cumple inventario.ProductUseCase.
type ProductService interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error)
	ExpiringWithin(ctx context.Context, days int) (*dto.ProductListResponse, error)
	Classify(ctx context.Context) (*dto.ClassifyProductsResponse, error)
	Delete(ctx context.Context, id string) error
}

// MovementService lo cumple inventario.MovementUseCase.
type MovementService interface {
	Register(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error)
	ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error)
}

// ProductHandler maneja /api/inventario/productos y /api/inventario/movimientos.
type ProductHandler struct {
	base
	products  ProductService
	movements MovementService
}

// NewProductHandler construye el handler de inventario.
func NewProductHandler(products ProductService, movements MovementService, log *logger.Logger, dev bool) *ProductHandler {
	return &ProductHandler{base: newBase(log, dev), products: products, movements: movements}
}

// Create godoc
// @Summary      Crear producto
// @Description  Se crea con estado activo; POST /clasificar lo recalcula según fecha_caducidad.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.ExpiryDate == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "nombre y fecha_caducidad son requeridos")
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         inventario
// @Produce      json
// @Param        estado        query  string  false  "activo, proximo_vencer, vencido, agotado"
// @Param        categoria_id  query  string  false  "Categoría"
// @Param        q             query  string  false  "Búsqueda por nombre o código de barras"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/inventario/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	in := dto.ProductListRequest{
		PageRequest: pageFromQuery(c),
		Status:      c.Query("estado"),
		CategoryID:  c.Query("categoria_id"),
		Search:      c.Query("q"),
	}
	out, err := h.products.List(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         inventario
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "producto no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. El stock se modifica solo con movimientos.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "producto no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Elimina el producto junto con sus alertas y movimientos.
// @Tags         inventario
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expiring godoc
// @Summary      Productos próximos a vencer
// @Tags         inventario
// @Produce      json
// @Param        dias  query  int  false  "Ventana en días"  default(30)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/inventario/productos/proximos-vencer [get]
func (h *ProductHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.products.ExpiringWithin(c.UserContext(), c.QueryInt("dias", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Classify godoc
// @Summary      Recalcular estado de todos los productos
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  dto.ClassifyProductsResponse
// @Security     BearerAuth
// @Router       /api/inventario/productos/clasificar [post]
func (h *ProductHandler) Classify(c *fiber.Ctx) error {
	out, err := h.products.Classify(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  entrada suma y salida resta del stock del producto. Falla con INSUFFICIENT_STOCK si no alcanza.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "producto_id, tipo, cantidad, motivo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/inventario/movimientos [post]
func (h *ProductHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" || in.Type == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "producto_id y tipo son requeridos")
	}
	out, err := h.movements.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Movimientos de un producto
// @Tags         inventario
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/productos/{id}/movimientos [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	out, err := h.movements.ListByProduct(c.UserContext(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
