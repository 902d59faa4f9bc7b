package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Holding-api/internal/application/dto"
	"github.com/jhoicas/Holding-api/internal/domain"
)

// localError guarda el error interno de un 500 para que lo registre RequestLogger.
const localError = "internal_error"

// Códigos de error de la API.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeModuleNotInstalled = "MODULE_NOT_INSTALLED"
	CodeModuleDisabled     = "MODULE_DISABLED"
	CodeInternal           = "INTERNAL"
)

// writeError traduce un error de dominio a su respuesta HTTP. Lo que no es un error de
// dominio se responde 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: domain.ErrInvalidInput.Error(), Details: verr.Fields}
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeInvalidCredentials, Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthenticated, Message: err.Error()}
	case errors.Is(err, domain.ErrModuleNotInstalled):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeModuleNotInstalled, Message: err.Error()}
	case errors.Is(err, domain.ErrModuleDisabled):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeModuleDisabled, Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno"}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}

// ErrorHandler manejador global de fiber: rutas inexistentes, límites del body y panics
// recuperados. Nunca expone el error interno.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code := CodeInvalidBody
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
