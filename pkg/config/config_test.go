package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-invoices-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.EnvDevelopment, cfg.App.Env)
	assert.Equal(t, "/api", cfg.App.APIPrefix)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoCreate)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Empty(t, cfg.JWT.Secret, "sin JWT_SECRET las rutas quedan públicas")
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("CORS_ORIGIN", "https://painel.exemplo.com.br")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.EnvProduction, cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "https://painel.exemplo.com.br", cfg.CORS.Origin)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_PortComoRespaldo(t *testing.T) {
	t.Setenv("PORT", "4000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.HTTP.Port)
}

func TestLoad_PuertoNoNumerico(t *testing.T) {
	t.Setenv("HTTP_PORT", "abc")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:word",
		DBName: "energy_invoices", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/energy_invoices?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://u:p@remote:5432/x"
	assert.Equal(t, "postgres://u:p@remote:5432/x", db.ConnectionString())
}

func TestConfig_Validate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			App:  config.AppConfig{Env: config.EnvDevelopment, APIPrefix: "/api"},
			DB:   config.DBConfig{Host: "localhost", Port: 5432, DBName: "energy_invoices"},
			HTTP: config.HTTPConfig{Port: 3000},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "válida", mutate: func(c *config.Config) {}},
		{name: "entorno desconocido", mutate: func(c *config.Config) { c.App.Env = "qa" }, wantErr: "APP_ENV"},
		{name: "puerto http fuera de rango", mutate: func(c *config.Config) { c.HTTP.Port = 70000 }, wantErr: "puerto HTTP"},
		{name: "sin host de base", mutate: func(c *config.Config) { c.DB.Host = "" }, wantErr: "DB_HOST"},
		{name: "database url evita validar host", mutate: func(c *config.Config) {
			c.DB.Host = ""
			c.DB.DatabaseURL = "postgres://u:p@h:5432/db"
		}},
		{name: "prefijo sin barra", mutate: func(c *config.Config) { c.App.APIPrefix = "api" }, wantErr: "API_PREFIX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
