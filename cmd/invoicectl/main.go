package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/energy-invoices-api/internal/interfaces/cli"
	"github.com/jhoicas/energy-invoices-api/pkg/config"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.Log.Level,
		Output: os.Stderr,
	})

	if err := cli.NewCLIApp(cfg, log).Execute(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
