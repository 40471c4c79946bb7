package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-invoices-api/internal/application/usecase"
	"github.com/jhoicas/energy-invoices-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/energy-invoices-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/energy-invoices-api/pkg/jwt"
	"github.com/jhoicas/energy-invoices-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testSubject   = "dashboard"
	testIssuer    = "energy-invoices-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"subject": apphttp.GetSubject(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testSubject, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccede(t *testing.T) {
	app := buildTestApp(apphttp.RoleReader, apphttp.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, apphttp.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testSubject, body["subject"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_ReaderAccede(t *testing.T) {
	app := buildTestApp(apphttp.RoleReader, apphttp.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, apphttp.RoleReader))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolNoPermitido_Retorna403(t *testing.T) {
	app := buildTestApp(apphttp.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, "billing"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"success":false`)
	assert.Contains(t, string(body), "billing")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(apphttp.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Token without role")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"sin header", ""},
		{"sin esquema Bearer", "Token abc"},
		{"token vacío", "Bearer   "},
		{"token malformado", "Bearer token.invalido.aqui"},
	}
	app := buildTestApp(apphttp.RoleAdmin)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_OtroSecreto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testSubject, apphttp.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(apphttp.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestLogger_RegistraSubjectDelToken(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})
	repo := memory.NewInvoiceRepository()
	app := apphttp.NewServer(testConfig(), log)
	apphttp.Router(app, apphttp.RouterDeps{
		InvoiceUC: usecase.NewInvoiceUseCase(repo),
		APIPrefix: "/api",
		JWTSecret: testJWTSecret,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleReader))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, buf.String(), `"subject":"dashboard"`)

	buf.Reset()
	resp = get(t, app, "/api/invoices", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotContains(t, buf.String(), `"subject"`)
}
