package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/energy-invoices-api/internal/infrastructure/pdf"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/energy-invoices-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/energy-invoices-api/internal/interfaces/http"
	"github.com/jhoicas/energy-invoices-api/internal/observability/metrics"
	"github.com/jhoicas/energy-invoices-api/pkg/config"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// @title                       Energy Invoices API
// @version                     1.0
// @description                 Listado, filtro y exportación de facturas de energía eléctrica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuración inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoCreate {
		created, err := postgres.EnsureDatabase(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("crear base de datos")
		}
		if created {
			log.Info().Str("db", cfg.DB.DBName).Msg("base de datos creada")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("conectado a PostgreSQL")

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	metrics.Init(pool)

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo)
	exportUC := usecase.NewExportUseCase(invoiceRepo, map[string]usecase.InvoiceReportGenerator{
		dto.ExportFormatXLSX: infraxlsx.NewExcelizeGenerator(),
		dto.ExportFormatPDF:  infrapdf.NewMarotoPDFGenerator(),
	})

	app := httpRouter.NewServer(cfg, log.WithComponent("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if err := httpRouter.MountDocs(app, "./docs/swagger.json"); err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC: invoiceUC,
		ExportUC:  exportUC,
		APIPrefix: cfg.App.APIPrefix,
		JWTSecret: cfg.JWT.Secret,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de facturas sin autenticación")
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
