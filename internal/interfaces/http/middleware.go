package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/energy-invoices-api/internal/observability/metrics"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// RequestLogger registra cada request con zerolog. Resuelve el error con el ErrorHandler
// de la app para que el status logueado (y el de MetricsMiddleware) sea el final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		if sub := GetSubject(c); sub != "" {
			ev = ev.Str("subject", sub)
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}

// MetricsMiddleware observa latencia y status por ruta (patrón registrado, no la URL).
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		metrics.ObserveHTTPRequest(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
