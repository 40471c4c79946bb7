// Package cli implementa invoicectl: migraciones, importación de facturas y emisión de tokens.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/memory"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/postgres"
	"github.com/jhoicas/energy-invoices-api/pkg/config"
	"github.com/jhoicas/energy-invoices-api/pkg/jwt"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// CLIApp aplicación de línea de comandos.
type CLIApp struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	log     *logger.Logger
}

// NewCLIApp construye el árbol de comandos.
func NewCLIApp(cfg *config.Config, log *logger.Logger) *CLIApp {
	app := &CLIApp{cfg: cfg, log: log}

	rootCmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Herramientas de operación de energy-invoices-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(app.migrateCmd(), app.importCmd(), app.tokenCmd())

	app.rootCmd = rootCmd
	return app
}

// Execute ejecuta el comando indicado en args (sin el nombre del binario).
func (app *CLIApp) Execute(ctx context.Context, args []string, out io.Writer) error {
	app.rootCmd.SetArgs(args)
	app.rootCmd.SetOut(out)
	return app.rootCmd.ExecuteContext(ctx)
}

func (app *CLIApp) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea la base si falta y aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.cfg.DB.AutoCreate {
				created, err := postgres.EnsureDatabase(cmd.Context(), app.cfg.DB)
				if err != nil {
					return err
				}
				if created {
					app.log.Info().Str("db", app.cfg.DB.DBName).Msg("base de datos creada")
				}
			}
			if err := postgres.RunMigrations(app.cfg.DB.ConnectionString()); err != nil {
				return err
			}
			app.log.Info().Msg("migraciones aplicadas")
			return nil
		},
	}
}

func (app *CLIApp) importCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Importa (upsert) facturas desde un JSON con montos en formato pt-BR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readImportFile(args[0])
			if err != nil {
				return err
			}

			var runner usecase.InvoiceTxRunner
			if dryRun {
				runner = memory.NewInvoiceRepository()
			} else {
				pool, err := postgres.NewPool(cmd.Context(), app.cfg.DB)
				if err != nil {
					return err
				}
				defer pool.Close()
				runner = postgres.NewTxRunner(pool)
			}

			res, err := usecase.NewImportUseCase(runner).Import(cmd.Context(), records)
			if err != nil {
				return err
			}
			app.log.Info().Int("imported", res.Imported).Bool("dry_run", dryRun).Str("file", args[0]).Msg("importación terminada")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d invoices\n", res.Imported)
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Valida el archivo sin escribir en la base")
	return cmd
}

func (app *CLIApp) tokenCmd() *cobra.Command {
	var subject, role string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un Bearer Token firmado con JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minutes <= 0 {
				minutes = app.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(app.cfg.JWT.Secret, subject, role, app.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Sujeto del token (consumidor de la API)")
	cmd.Flags().StringVar(&role, "role", "reader", "Rol: reader | admin")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func readImportFile(path string) ([]dto.ImportInvoiceRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	var records []dto.ImportInvoiceRequest
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return records, nil
}
