package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
)

// MemberHandler membresías de una firma.
type MemberHandler struct {
	uc *usecase.MembershipUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(uc *usecase.MembershipUseCase) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// List godoc
// @Summary      Miembros de la firma
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID o slug de la firma"
// @Success      200  {array}  dto.MemberResponse
// @Router       /firms/{id}/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar un usuario existente a la firma
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID o slug de la firma"
// @Param        body  body  dto.AddMemberRequest  true  "email y rol"
// @Success      201   {object}  dto.MemberResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms/{id}/members [post]
func (h *MemberHandler) Add(c *fiber.Ctx) error {
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ChangeRole godoc
// @Summary      Cambiar el rol de un miembro (sólo OWNER)
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                   true  "ID o slug de la firma"
// @Param        userId  path  string                   true  "ID del usuario"
// @Param        body    body  dto.UpdateMemberRequest  true  "rol"
// @Success      200     {object}  dto.MemberResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /firms/{id}/members/{userId} [patch]
func (h *MemberHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.UpdateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeRole(c.UserContext(), actorFrom(c), c.Params("userId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar un miembro (sólo OWNER)
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID o slug de la firma"
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.SuccessResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /firms/{id}/members/{userId} [delete]
func (h *MemberHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), actorFrom(c), c.Params("userId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
