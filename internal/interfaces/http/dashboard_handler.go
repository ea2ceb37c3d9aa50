package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/logger"
)

// DashboardService lo cumple dashboard.DashboardUseCase.
type DashboardService interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

// DashboardHandler maneja /api/dashboard.
type DashboardHandler struct {
	base
	svc DashboardService
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(svc DashboardService, log *logger.Logger, dev bool) *DashboardHandler {
	return &DashboardHandler{base: newBase(log, dev), svc: svc}
}

// Summary godoc
// @Summary      Resumen del dashboard
// @Description  Totales de productos, próximos a vencer, alertas activas por prioridad y ahorro del mes.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.svc.GetSummary(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
