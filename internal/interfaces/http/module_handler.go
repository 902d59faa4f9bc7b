package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
)

// ModuleHandler catálogo de módulos e instalaciones por firma.
type ModuleHandler struct {
	registry *usecase.ModuleService
	bindings *usecase.FirmModuleUseCase
}

// NewModuleHandler construye el handler.
func NewModuleHandler(registry *usecase.ModuleService, bindings *usecase.FirmModuleUseCase) *ModuleHandler {
	return &ModuleHandler{registry: registry, bindings: bindings}
}

// ListCatalog godoc
// @Summary      Catálogo de módulos con conteos de instalación
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /modules [get]
func (h *ModuleHandler) ListCatalog(c *fiber.Ctx) error {
	out, err := h.registry.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar módulo en el catálogo
// @Tags         modules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterModuleRequest  true  "Definición del módulo"
// @Success      201   {object}  dto.ModuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /modules [post]
func (h *ModuleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.registry.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetModule godoc
// @Summary      Obtener módulo del catálogo por slug
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Slug del módulo"
// @Success      200   {object}  dto.ModuleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /modules/{slug} [get]
func (h *ModuleHandler) GetModule(c *fiber.Ctx) error {
	out, err := h.registry.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListInstalled godoc
// @Summary      Módulos instalados en la firma
// @Tags         firm-modules
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID o slug de la firma"
// @Success      200  {array}  dto.FirmModuleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /firms/{id}/modules [get]
func (h *ModuleHandler) ListInstalled(c *fiber.Ctx) error {
	out, err := h.bindings.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Install godoc
// @Summary      Instalar módulo en la firma
// @Tags         firm-modules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID o slug de la firma"
// @Param        body  body  dto.InstallModuleRequest  true  "moduleId (ID o slug), isEnabled, settings"
// @Success      201   {object}  dto.FirmModuleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms/{id}/modules [post]
func (h *ModuleHandler) Install(c *fiber.Ctx) error {
	var in dto.InstallModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bindings.Install(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateInstalled godoc
// @Summary      Habilitar, deshabilitar o configurar un módulo instalado
// @Tags         firm-modules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path  string                       true  "ID o slug de la firma"
// @Param        moduleId  path  string                       true  "ID o slug del módulo"
// @Param        body      body  dto.UpdateFirmModuleRequest  true  "isEnabled, settings"
// @Success      200       {object}  dto.FirmModuleResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /firms/{id}/modules/{moduleId} [patch]
func (h *ModuleHandler) UpdateInstalled(c *fiber.Ctx) error {
	var in dto.UpdateFirmModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bindings.Update(c.UserContext(), actorFrom(c), c.Params("moduleId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Uninstall godoc
// @Summary      Desinstalar módulo (descarta settings)
// @Tags         firm-modules
// @Security     Bearer
// @Produce      json
// @Param        id        path  string  true  "ID o slug de la firma"
// @Param        moduleId  path  string  true  "ID o slug del módulo"
// @Success      200       {object}  dto.SuccessResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /firms/{id}/modules/{moduleId} [delete]
func (h *ModuleHandler) Uninstall(c *fiber.Ctx) error {
	if err := h.bindings.Uninstall(c.UserContext(), actorFrom(c), c.Params("moduleId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
