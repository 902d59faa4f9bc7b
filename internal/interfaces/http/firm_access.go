package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/gate"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain/access"
)

// LocalAuthorization guarda el *gate.Authorization de la petición.
const LocalAuthorization = "authorization"

// Authorizer lo implementa *gate.Gate.
type Authorizer interface {
	Authorize(ctx context.Context, req gate.Request) (*gate.Authorization, error)
}

// RequireFirmAccess pasa la petición por el gate. La firma sale del parámetro :id o, si no
// hay, de ?firmId=. moduleSlug vacío = operación sin módulo. Debe ir después de AuthMiddleware.
func RequireFirmAccess(g Authorizer, op access.Operation, moduleSlug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := c.Params("id")
		if ref == "" {
			ref = c.Query("firmId")
		}
		authz, err := g.Authorize(c.UserContext(), gate.Request{
			UserID:     GetUserID(c),
			Firm:       gate.ParseFirmRef(ref),
			ModuleSlug: moduleSlug,
			Operation:  op,
		})
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalAuthorization, authz)
		return c.Next()
	}
}

// GetAuthorization autorización resuelta por RequireFirmAccess (nil si no pasó por él).
func GetAuthorization(c *fiber.Ctx) *gate.Authorization {
	a, _ := c.Locals(LocalAuthorization).(*gate.Authorization)
	return a
}

// actorFrom identidad autorizada para los casos de uso.
func actorFrom(c *fiber.Ctx) usecase.Actor {
	a := GetAuthorization(c)
	if a == nil {
		return usecase.Actor{UserID: GetUserID(c)}
	}
	return usecase.Actor{UserID: a.UserID, FirmID: a.FirmID, Role: a.Role}
}
