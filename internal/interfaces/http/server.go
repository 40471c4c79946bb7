package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/energy-invoices-api/pkg/config"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// NewServer crea la app Fiber con el error handler, los middlewares globales,
// /health y /metrics. Las rutas de negocio se registran con Router.
func NewServer(cfg *config.Config, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ErrorHandler:          ErrorHandler(log),
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 30,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(MetricsMiddleware())
	app.Use(RequestLogger(log))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.Origin,
		AllowMethods: cfg.CORS.Methods,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}
