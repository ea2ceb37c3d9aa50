package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y deja UserID, Email y Role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if errors.Is(err, jwt.ErrExpired) {
			return errorJSON(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "token expirado")
		}
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// OptionalAuth aplica AuthMiddleware solo si required; si no, deja pasar sin claims.
func OptionalAuth(required bool, jwtSecret string) fiber.Handler {
	if !required {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return AuthMiddleware(jwtSecret)
}

// WritesOnly aplica h solo a métodos que modifican estado; GET/HEAD/OPTIONS pasan directo.
func WritesOnly(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		return h(c)
	}
}

// RequireRole autoriza solo a los roles indicados. Va después de AuthMiddleware.
// Token sin rol → 401 MISSING_ROLE; rol no permitido → 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin permisos para esta operación")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto; "" si la ruta no pasó por AuthMiddleware.
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
