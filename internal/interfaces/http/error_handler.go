package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/domain"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// ErrorHandler traduce los errores de los handlers a {success:false, message[, detail]}.
//
//   - *domain.HTTPError → su status y mensaje.
//   - *fiber.Error (404 de ruta, 405, body inválido) → su código y mensaje.
//   - cualquier otro → 500 "Internal server error" con el texto del error en detail.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if httpErr, ok := domain.AsHTTPError(err); ok {
			if httpErr.StatusCode >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("error de aplicación")
			}
			return c.Status(httpErr.StatusCode).JSON(dto.NewError(httpErr.Message, ""))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.NewError(fe.Message, ""))
		}

		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("Internal server error", err.Error()))
	}
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
