package http

import (
	"fmt"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-invoices-api/docs"
)

// MountDocs sirve Swagger UI en /docs a partir del swagger.json generado por swag.
// El middleware lee el archivo al montarse, así que se comprueba antes.
func MountDocs(app *fiber.App, filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("swagger: %w", err)
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	return nil
}
