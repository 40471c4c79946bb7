package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/energy-invoices-api/pkg/config"
)

// maintenanceDB base a la que se conecta EnsureDatabase para crear la de la app.
const maintenanceDB = "postgres"

// EnsureDatabase crea la base cfg.DBName si no existe. Devuelve true si la creó.
// Solo aplica cuando la conexión se arma por partes (sin DATABASE_URL).
func EnsureDatabase(ctx context.Context, cfg config.DBConfig) (bool, error) {
	if cfg.DatabaseURL != "" || cfg.DBName == "" {
		return false, nil
	}
	adminCfg := cfg
	adminCfg.DBName = maintenanceDB

	conn, err := pgx.Connect(ctx, adminCfg.DSN())
	if err != nil {
		return false, fmt.Errorf("connect %s: %w", maintenanceDB, err)
	}
	defer func() { _ = conn.Close(ctx) }()

	var exists bool
	err = conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, cfg.DBName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check database %s: %w", cfg.DBName, err)
	}
	if exists {
		return false, nil
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return false, fmt.Errorf("create database %s: %w", cfg.DBName, err)
	}
	return true, nil
}
