package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-invoices-api/internal/application/dto"
	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/domain/entity"
	"github.com/jhoicas/energy-invoices-api/internal/domain/repository"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/memory"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/pdf"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/energy-invoices-api/internal/interfaces/http"
	"github.com/jhoicas/energy-invoices-api/pkg/config"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Detail  string                `json:"detail"`
	Data    []dto.InvoiceResponse `json:"data"`
}

type brokenRepo struct{}

func (brokenRepo) Save(context.Context, *entity.Invoice) error { return errors.New("db down") }
func (brokenRepo) FindAll(context.Context) ([]*entity.Invoice, error) {
	return nil, errors.New("db down")
}
func (brokenRepo) FindByFilters(context.Context, repository.InvoiceFilterCriteria) ([]*entity.Invoice, error) {
	return nil, errors.New("db down")
}

func testInvoice(t *testing.T, customer, month string) *entity.Invoice {
	t.Helper()
	inv, err := entity.NewInvoiceFromRaw(entity.RawInvoice{
		CustomerNumber:        customer,
		ReferenceMonth:        month,
		ElectricityKwh:        "50",
		ElectricityCost:       "47,75",
		SceeeEnergyKwh:        "456",
		SceeeEnergyCost:       "232,42",
		CompensatedEnergyKwh:  "456",
		CompensatedEnergyCost: "-222,22",
		LightingContribution:  "49,43",
		AmountToPay:           "107,38",
	})
	require.NoError(t, err)
	return inv
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: config.EnvTest, Name: "energy-invoices-test", APIPrefix: "/api"},
		CORS: config.CORSConfig{Origin: "http://localhost:8080", Methods: "GET,PUT,POST,DELETE"},
	}
}

func newApp(repo repository.InvoiceRepository, jwtSecret string) *fiber.App {
	cfg := testConfig()
	app := apphttp.NewServer(cfg, logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		InvoiceUC: usecase.NewInvoiceUseCase(repo),
		ExportUC: usecase.NewExportUseCase(repo, map[string]usecase.InvoiceReportGenerator{
			dto.ExportFormatXLSX: xlsx.NewExcelizeGenerator(),
			dto.ExportFormatPDF:  pdf.NewMarotoPDFGenerator(),
		}),
		APIPrefix: cfg.App.APIPrefix,
		JWTSecret: jwtSecret,
	})
	return app
}

func seededApp(t *testing.T) *fiber.App {
	t.Helper()
	return newApp(memory.NewInvoiceRepository(
		testInvoice(t, "7204076116", "2024-01"),
		testInvoice(t, "7204076116", "2024-02"),
		testInvoice(t, "7005400387", "2024-01"),
	), "")
}

func get(t *testing.T, app *fiber.App, target, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/invoices
// ──────────────────────────────────────────────────────────────────────────────

func TestListAll_DevuelveTodas(t *testing.T) {
	resp := get(t, seededApp(t), "/api/invoices", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "Invoices fetched successfully", env.Message)
	require.Len(t, env.Data, 3)
	assert.Equal(t, "2024-02", env.Data[0].ReferenceMonth, "más reciente primero")
	assert.Equal(t, "329,60", env.Data[0].TotalCostWithoutGd.Formatted)
	assert.Equal(t, "-222,22", env.Data[0].GdSavings.Formatted)
}

func TestListAll_ValueEsNumero(t *testing.T) {
	app := newApp(memory.NewInvoiceRepository(testInvoice(t, "7204076116", "2024-01")), "")
	resp := get(t, app, "/api/invoices", "")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"totalCostWithoutGd":{"value":329.6,"formatted":"329,60"}`)
	assert.Contains(t, string(body), `"gdSavings":{"value":-222.22,"formatted":"-222,22"}`)
}

func TestListAll_SinFacturasDevuelveArrayVacio(t *testing.T) {
	resp := get(t, newApp(memory.NewInvoiceRepository(), ""), "/api/invoices", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"data":[]`)
}

func TestListAll_ErrorDeRepositorio_Retorna500(t *testing.T) {
	resp := get(t, newApp(brokenRepo{}, ""), "/api/invoices", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decode(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Equal(t, "db down", env.Detail)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/invoices/filter
// ──────────────────────────────────────────────────────────────────────────────

func TestFindByFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{"cliente y mes", "?customerNumber=7204076116&referenceMonth=2024-01", 1},
		{"solo cliente", "?customerNumber=7204076116", 2},
		{"solo mes", "?referenceMonth=2024-01", 2},
		{"sin filtros", "", 3},
		{"cliente vacío no filtra", "?customerNumber=", 3},
		{"sin coincidencias", "?customerNumber=000", 0},
	}
	app := seededApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, "/api/invoices/filter"+tt.query, "")
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			env := decode(t, resp)
			assert.Equal(t, "Invoices fetched filtered successfully", env.Message)
			assert.Len(t, env.Data, tt.wantCount)
		})
	}
}

func TestFindByFilter_MesInvalido_Retorna422(t *testing.T) {
	app := seededApp(t)
	for _, q := range []string{"?referenceMonth=2024-1", "?referenceMonth=", "?referenceMonth=01/2024"} {
		resp := get(t, app, "/api/invoices/filter"+q, "")
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, q)

		env := decode(t, resp)
		_ = resp.Body.Close()
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "referenceMonth")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/invoices/export
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_XLSXPorDefecto(t *testing.T) {
	resp := get(t, seededApp(t), "/api/invoices/export?referenceMonth=2024-01", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "faturas_2024-01_")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx es un zip")
}

func TestExport_PDF(t *testing.T) {
	resp := get(t, seededApp(t), "/api/invoices/export?format=pdf", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestExport_FormatoInvalido_Retorna422(t *testing.T) {
	resp := get(t, seededApp(t), "/api/invoices/export?format=csv", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode(t, resp).Message, "format")
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth, health y rutas inexistentes
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_ConJWTConfigurado(t *testing.T) {
	app := newApp(memory.NewInvoiceRepository(testInvoice(t, "7204076116", "2024-01")), testJWTSecret)

	resp := get(t, app, "/api/invoices", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = get(t, app, "/api/invoices", tokenForRole(t, "billing"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = get(t, app, "/api/invoices", tokenForRole(t, apphttp.RoleReader))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = get(t, app, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health no requiere token")
	_ = resp.Body.Close()
}

func TestHealth(t *testing.T) {
	resp := get(t, seededApp(t), "/health", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "energy-invoices-test", body["service"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRutaInexistente_Retorna404(t *testing.T) {
	resp := get(t, seededApp(t), "/api/nada", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, decode(t, resp).Success)
}
