package usecase

import (
	"context"
	"io"
)

// UploadFile archivo a publicar en el host externo.
type UploadFile struct {
	Key         string // ruta destino dentro del bucket
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadOptions restricciones de la subida.
type UploadOptions struct {
	MaxSize      int64
	AllowedTypes []string
}

// Uploader publica un archivo y devuelve su URL pública. Devuelve un error que envuelve
// domain.ErrInvalidInput si el archivo excede MaxSize o su tipo no está permitido.
type Uploader interface {
	Upload(ctx context.Context, file UploadFile, opts UploadOptions) (string, error)
}
