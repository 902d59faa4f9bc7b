package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
)

// CRMHandler clientes del módulo CRM.
type CRMHandler struct {
	uc *usecase.ClientUseCase
}

// NewCRMHandler construye el handler.
func NewCRMHandler(uc *usecase.ClientUseCase) *CRMHandler {
	return &CRMHandler{uc: uc}
}

// List godoc
// @Summary      Clientes
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID o slug de la firma"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ClientListResponse
// @Router       /firms/{id}/crm/clients [get]
func (h *CRMHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID o slug de la firma"
// @Param        body  body  dto.CreateClientRequest  true  "Datos"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /firms/{id}/crm/clients [post]
func (h *CRMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path  string                   true  "ID o slug de la firma"
// @Param        clientId  path  string                   true  "ID del cliente"
// @Param        body      body  dto.UpdateClientRequest  true  "Campos a cambiar"
// @Success      200       {object}  dto.ClientResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /firms/{id}/crm/clients/{clientId} [patch]
func (h *CRMHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("clientId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        id        path  string  true  "ID o slug de la firma"
// @Param        clientId  path  string  true  "ID del cliente"
// @Success      200       {object}  dto.SuccessResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /firms/{id}/crm/clients/{clientId} [delete]
func (h *CRMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("clientId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
