package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
)

// FirmHandler holdings, firmas, logo y auditoría.
type FirmHandler struct {
	firms *usecase.FirmUseCase
	audit *usecase.AuditUseCase
}

// NewFirmHandler construye el handler.
func NewFirmHandler(firms *usecase.FirmUseCase, audit *usecase.AuditUseCase) *FirmHandler {
	return &FirmHandler{firms: firms, audit: audit}
}

// ListHoldings godoc
// @Summary      Listar holdings
// @Tags         holdings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.HoldingResponse
// @Router       /holdings [get]
func (h *FirmHandler) ListHoldings(c *fiber.Ctx) error {
	out, err := h.firms.ListHoldings(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateHolding godoc
// @Summary      Crear holding
// @Tags         holdings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHoldingRequest  true  "Datos del holding"
// @Success      201   {object}  dto.HoldingResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /holdings [post]
func (h *FirmHandler) CreateHolding(c *fiber.Ctx) error {
	var in dto.CreateHoldingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.firms.CreateHolding(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Create godoc
// @Summary      Crear firma (el creador queda como OWNER)
// @Tags         firms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFirmRequest  true  "Datos de la firma"
// @Success      201   {object}  dto.FirmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /firms [post]
func (h *FirmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.firms.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis firmas con el rol en cada una
// @Tags         firms
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MembershipResponse
// @Router       /firms [get]
func (h *FirmHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.firms.ListMine(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener firma por ID o slug
// @Tags         firms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID o slug de la firma"
// @Success      200  {object}  dto.FirmResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /firms/{id} [get]
func (h *FirmHandler) Get(c *fiber.Ctx) error {
	out, err := h.firms.Get(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre o color (el slug es inmutable)
// @Tags         firms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID o slug de la firma"
// @Param        body  body  dto.UpdateFirmRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.FirmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /firms/{id} [patch]
func (h *FirmHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFirmRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.firms.Update(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo de la firma
// @Tags         firms
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID o slug de la firma"
// @Param        file  formData  file    true  "Imagen (png, jpeg, webp)"
// @Success      200   {object}  dto.FirmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /firms/{id}/logo [post]
func (h *FirmHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, domain.Invalid("file", "requerido"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	out, err := h.firms.UploadLogo(c.UserContext(), actorFrom(c), usecase.UploadFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AuditLogs godoc
// @Summary      Registro de auditoría de la firma
// @Tags         firms
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID o slug de la firma"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.AuditLogListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /firms/{id}/audit-logs [get]
func (h *FirmHandler) AuditLogs(c *fiber.Ctx) error {
	out, err := h.audit.List(c.UserContext(), actorFrom(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func pageFrom(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	return page
}
