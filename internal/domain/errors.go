package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrModuleNotInstalled = errors.New("módulo no instalado en la firma")
	ErrModuleDisabled     = errors.New("módulo deshabilitado en la firma")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// DenialReason motivo tipado de un rechazo del gate de autorización.
type DenialReason string

const (
	ReasonUnauthenticated    DenialReason = "UNAUTHENTICATED"
	ReasonNotFound           DenialReason = "NOT_FOUND"
	ReasonForbidden          DenialReason = "FORBIDDEN"
	ReasonModuleNotInstalled DenialReason = "MODULE_NOT_INSTALLED"
	ReasonModuleDisabled     DenialReason = "MODULE_DISABLED"
)

// DeniedError es el resultado Denied(reason) del gate. errors.Is funciona contra el sentinel del motivo.
type DeniedError struct {
	Reason DenialReason
	Detail string
}

// Deny construye un *DeniedError.
func Deny(reason DenialReason, detail string) error {
	return &DeniedError{Reason: reason, Detail: detail}
}

func (e *DeniedError) Error() string {
	if e.Detail == "" {
		return e.Unwrap().Error()
	}
	return e.Unwrap().Error() + ": " + e.Detail
}

func (e *DeniedError) Unwrap() error {
	switch e.Reason {
	case ReasonUnauthenticated:
		return ErrUnauthenticated
	case ReasonNotFound:
		return ErrNotFound
	case ReasonModuleNotInstalled:
		return ErrModuleNotInstalled
	case ReasonModuleDisabled:
		return ErrModuleDisabled
	default:
		return ErrForbidden
	}
}

// ValidationError acumula errores por campo; se traduce a HTTP 400 con detalle.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un acumulador vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra el primer error de un campo.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// HasErrors informa si hay al menos un campo inválido.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil devuelve el error sólo si hay campos inválidos (evita el nil tipado).
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid atajo para un único campo inválido.
func Invalid(field, msg string) error {
	v := NewValidationError()
	v.Add(field, msg)
	return v
}

// Conflict envuelve ErrConflict con un mensaje de negocio.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando el recurso.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}
