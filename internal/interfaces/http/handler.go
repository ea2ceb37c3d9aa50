package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/pkg/logger"
)

// base lo embeben los handlers: logger del componente y si se exponen errores internos.
type base struct {
	log *logger.Logger
	dev bool
}

func newBase(log *logger.Logger, dev bool) base {
	if log == nil {
		log = logger.Nop()
	}
	return base{log: log, dev: dev}
}

func (b base) fail(c *fiber.Ctx, err error) error {
	return respondError(c, b.log, b.dev, err)
}

// pageFromQuery lee limit/offset con los valores por defecto de dto.PageRequest.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
