package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/pkg/logger"
)

// RequestRecorder lo cumple metrics.Collector.
type RequestRecorder interface {
	RecordRequest(method, route string, statusCode int, duration time.Duration)
}

// RequestLogger registra method, path, status y latencia de cada petición, y las métricas HTTP
// si rec no es nil. Resuelve el error con el ErrorHandler de la app para conocer el status final.
func RequestLogger(log *logger.Logger, rec RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Msg("petición http")

		if rec != nil {
			route := c.Route().Path
			if status == fiber.StatusNotFound && route == "/" {
				route = "no_encontrada"
			}
			rec.RecordRequest(c.Method(), route, status, latency)
		}
		return nil
	}
}
