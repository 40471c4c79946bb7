package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC *usecase.InvoiceUseCase
	ExportUC  *usecase.ExportUseCase
	APIPrefix string // por defecto /api
	JWTSecret string // vacío = rutas públicas
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	prefix := deps.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := app.Group(prefix)

	// Con JWT_SECRET configurado las facturas requieren Bearer Token con rol reader o admin.
	var guards []fiber.Handler
	if deps.JWTSecret != "" {
		guards = append(guards, AuthMiddleware(deps.JWTSecret), RequireRole(RoleReader, RoleAdmin))
	}

	invoices := api.Group("/invoices", guards...)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC)
	invoices.Get("/", invoiceHandler.ListAll)
	invoices.Get("/filter", invoiceHandler.FindByFilter)
	invoices.Get("/export", invoiceHandler.Export)
}
