package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/application/ports"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/pkg/logger"
)

// errorJSON responde {error, code} con el status dado.
func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

// respondError traduce errores de dominio a HTTP. Los errores no reconocidos son 500 y el
// detalle solo va al log (salvo en desarrollo).
func respondError(c *fiber.Ctx, log *logger.Logger, exposeInternal bool, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return errorJSON(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ports.ErrLLMUnavailable):
		return errorJSON(c, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE", "el servicio de IA no está configurado")
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	msg := "error interno del servidor"
	if exposeInternal {
		msg = err.Error()
	}
	return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", msg)
}

// ErrorHandler para fiber.Config: rutas inexistentes, método no permitido, body demasiado grande
// y panics recuperados llegan aquí.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return errorJSON(c, fe.Code, "NOT_FOUND", "Endpoint no encontrado")
			case fiber.StatusMethodNotAllowed:
				return errorJSON(c, fe.Code, "METHOD_NOT_ALLOWED", "Método no permitido")
			}
			return errorJSON(c, fe.Code, "HTTP_ERROR", fe.Message)
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
	}
}
