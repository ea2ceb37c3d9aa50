package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/logger"
)

// ReportService lo cumple reportes.ReportUseCase.
type ReportService interface {
	Generate(ctx context.Context, in dto.GenerateReportRequest) (*dto.GenerateReportResponse, error)
	PDF(ctx context.Context, in dto.GenerateReportRequest) ([]byte, string, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.ReportListResponse, error)
}

// ReportHandler maneja /api/reportes.
type ReportHandler struct {
	base
	svc ReportService
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(svc ReportService, log *logger.Logger, dev bool) *ReportHandler {
	return &ReportHandler{base: newBase(log, dev), svc: svc}
}

// Generate godoc
// @Summary      Generar reporte de desperdicio evitado
// @Description  Agrega las alertas resueltas creadas entre fecha_inicio y fecha_fin (ambas inclusive).
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "fecha_inicio, fecha_fin (YYYY-MM-DD), tipo_reporte"
// @Success      200   {object}  dto.GenerateReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reportes/generar [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Generate(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar reporte en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Param        fecha_inicio  query  string  true   "YYYY-MM-DD"
// @Param        fecha_fin     query  string  true   "YYYY-MM-DD"
// @Param        tipo_reporte  query  string  false  "desperdicio"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.QueryParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros inválidos")
	}
	pdfBytes, filename, err := h.svc.PDF(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// List godoc
// @Summary      Histórico de reportes generados
// @Tags         reportes
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ReportListResponse
// @Router       /api/reportes [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
