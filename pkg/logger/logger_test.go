package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})

	log.WithComponent("postgres").Info().Str("database", "energy_invoices").Msg("conectado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "postgres", line["component"])
	assert.Equal(t, "energy_invoices", line["database"])
	assert.Equal(t, "conectado", line["message"])
}

func TestNew_NivelPorEntorno(t *testing.T) {
	var prod bytes.Buffer
	logger.New(logger.Config{Env: "production", Output: &prod}).Debug().Msg("oculto")
	assert.Zero(t, prod.Len(), "debug no se emite fuera de development")

	var dev bytes.Buffer
	logger.New(logger.Config{Env: "development", Output: &dev}).Debug().Msg("visible")
	assert.Contains(t, dev.String(), "visible")
}

func TestNew_NivelExplicito(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "development", Level: "error", Output: &buf})
	log.Warn().Msg("descartado")
	assert.Zero(t, buf.Len())
}
