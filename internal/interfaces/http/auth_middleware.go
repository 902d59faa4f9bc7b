package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/auth"
	"github.com/jhoicas/Holding-api/internal/domain"
)

// Locals keys.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// SessionResolver lo implementa *auth.AuthUseCase.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*auth.Session, error)
}

// AuthMiddleware valida el Bearer Token y carga UserID y Email en c.Locals.
func AuthMiddleware(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return writeError(c, domain.Deny(domain.ReasonUnauthenticated, "Authorization header requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return writeError(c, domain.Deny(domain.ReasonUnauthenticated, "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return writeError(c, domain.Deny(domain.ReasonUnauthenticated, "token vacío"))
		}
		session, err := sessions.ResolveSession(c.UserContext(), tokenString)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalEmail, session.Email)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
