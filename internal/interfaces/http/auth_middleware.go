package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/energy-invoices-api/internal/domain"
	"github.com/jhoicas/energy-invoices-api/pkg/jwt"
)

// Locals keys para el subject y el rol del token en Fiber.
const (
	LocalSubject = "subject"
	LocalRole    = "role"
)

// Roles reconocidos por RequireRole.
const (
	RoleReader = "reader"
	RoleAdmin  = "admin"
)

// AuthMiddleware valida el Bearer Token JWT y deja subject y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return domain.NewUnauthorized("Authorization header required")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return domain.NewUnauthorized("Expected format: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return domain.NewUnauthorized("Empty token")
		}
		subject, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return domain.NewUnauthorized("Invalid or expired token")
		}
		c.Locals(LocalSubject, subject)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole exige que el rol del token sea uno de roles. Debe ir después de AuthMiddleware.
// Token sin rol → 401; rol no permitido → 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return domain.NewUnauthorized("Token without role")
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return domain.NewForbidden("Role '" + role + "' is not allowed")
	}
}

// GetSubject devuelve el subject del token (después del middleware de auth).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}

// GetRole devuelve el rol del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
