package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/pkg/logger"
)

// AlertService lo cumple alertas.AlertUseCase.
type AlertService interface {
	Generate(ctx context.Context) (*dto.GenerateAlertsResponse, error)
	ListActive(ctx context.Context) (*dto.AlertListResponse, error)
	ListByProduct(ctx context.Context, productID string) (*dto.AlertListResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AlertResponse, error)
	UpdateStatus(ctx context.Context, in dto.UpdateAlertStatusRequest) bool
	History(ctx context.Context, alertID string) (*dto.AlertHistoryListResponse, error)
}

// AlertHandler maneja /api/alertas (sin autenticación).
type AlertHandler struct {
	base
	svc AlertService
}

// NewAlertHandler construye el handler de alertas.
func NewAlertHandler(svc AlertService, log *logger.Logger, dev bool) *AlertHandler {
	return &AlertHandler{base: newBase(log, dev), svc: svc}
}

// List godoc
// @Summary      Listar alertas activas
// @Description  Alertas con estado activa, más prioritarias primero. Con producto_id lista todas las alertas del producto.
// @Tags         alertas
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto (cualquier estado)"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alertas [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var (
		out *dto.AlertListResponse
		err error
	)
	if productID := c.Query("producto_id"); productID != "" {
		out, err = h.svc.ListByProduct(c.UserContext(), productID)
	} else {
		out, err = h.svc.ListActive(c.UserContext())
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una alerta
// @Description  Actualiza el estado y registra el cambio en el historial. success=false si la alerta no existe o la transacción falla.
// @Tags         alertas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateAlertStatusRequest  true  "alerta_id, estado, comentario, usuario"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/alertas [patch]
func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAlertStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.AlertID == "" || in.Status == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "alerta_id y estado son requeridos")
	}
	if !entity.IsValidAlertStatus(in.Status) {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "estado debe ser activa, en_proceso, resuelta o descartada")
	}
	ok := h.svc.UpdateStatus(c.UserContext(), in)
	return c.JSON(dto.SuccessResponse{Success: ok})
}

// Generate godoc
// @Summary      Generar alertas de vencimiento
// @Description  Revisa productos que vencen en los próximos 14 días y crea una alerta por producto sin alerta activa.
// @Tags         alertas
// @Produce      json
// @Success      200  {object}  dto.GenerateAlertsResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alertas/generar [post]
func (h *AlertHandler) Generate(c *fiber.Ctx) error {
	out, err := h.svc.Generate(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener alerta por ID
// @Tags         alertas
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alertas/{id} [get]
func (h *AlertHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "alerta no encontrada")
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de estados de una alerta
// @Tags         alertas
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertHistoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alertas/{id}/historial [get]
func (h *AlertHandler) History(c *fiber.Ctx) error {
	out, err := h.svc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
