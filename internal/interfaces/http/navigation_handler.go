package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/gate"
	"github.com/jhoicas/Holding-api/internal/application/navigation"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/internal/domain/access"
)

// NavigationHandler menú de la firma para el usuario.
type NavigationHandler struct {
	gate     Authorizer
	composer *navigation.Composer
}

// NewNavigationHandler construye el handler. Autoriza por su cuenta para poder degradar a la
// tabla estática también cuando falla la resolución de firma o membresía.
func NewNavigationHandler(g Authorizer, composer *navigation.Composer) *NavigationHandler {
	return &NavigationHandler{gate: g, composer: composer}
}

// Get godoc
// @Summary      Navegación de la firma según rol y módulos
// @Description  Si el almacén falla responde 200 con la tabla estática y fallback=true.
// @Tags         navigation
// @Security     Bearer
// @Produce      json
// @Param        firmId  query  string  true  "ID o slug de la firma"
// @Success      200     {object}  dto.NavigationResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /navigation [get]
func (h *NavigationHandler) Get(c *fiber.Ctx) error {
	ref := gate.ParseFirmRef(c.Query("firmId"))
	authz, err := h.gate.Authorize(c.UserContext(), gate.Request{
		UserID:    GetUserID(c),
		Firm:      ref,
		Operation: access.NavigationView,
	})
	if err != nil {
		var denied *domain.DeniedError
		if errors.As(err, &denied) || errors.Is(err, domain.ErrInvalidInput) {
			return writeError(c, err)
		}
		// Sin firma resuelta sólo se conoce lo que pidió el cliente.
		slug := ref.Slug
		if slug == "" {
			slug = ref.ID
		}
		res := h.composer.Degraded(slug, err)
		return c.JSON(dto.NavigationResponse{Navigation: res.Sections, FirmSlug: slug, Fallback: true})
	}

	res := h.composer.Compose(c.UserContext(), authz.FirmID, authz.FirmSlug, authz.Role)
	out := dto.NavigationResponse{Navigation: res.Sections, FirmSlug: authz.FirmSlug}
	if res.IsFallback() {
		out.Fallback = true
	} else {
		out.UserRole = string(authz.Role)
	}
	return c.JSON(out)
}
