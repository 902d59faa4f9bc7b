// Package storage publica archivos (logos de firmas) en S3 o un servicio compatible (MinIO).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/pkg/config"
)

var _ usecase.Uploader = (*S3Uploader)(nil)

// objectPutter subconjunto de *s3.Client que usa el uploader.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader sube archivos a un bucket y devuelve su URL pública.
type S3Uploader struct {
	client  objectPutter
	bucket  string
	baseURL string
}

// NewS3Uploader crea el cliente S3 con credenciales estáticas si están configuradas;
// si no, usa la cadena por defecto de AWS (env, IAM role...).
func NewS3Uploader(ctx context.Context, cfg config.StorageConfig) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: cargar config AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3Uploader{client: client, bucket: cfg.Bucket, baseURL: publicBaseURL(cfg)}, nil
}

// publicBaseURL prefijo de las URLs devueltas. S3_PUBLIC_BASE_URL (CDN) tiene prioridad.
func publicBaseURL(cfg config.StorageConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload valida tamaño y tipo, sube el objeto y devuelve su URL.
func (u *S3Uploader) Upload(ctx context.Context, file usecase.UploadFile, opts usecase.UploadOptions) (string, error) {
	data, contentType, err := Validate(file, opts)
	if err != nil {
		return "", err
	}
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(file.Key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", file.Key, err)
	}
	return u.baseURL + "/" + strings.TrimLeft(file.Key, "/"), nil
}

// Validate lee el archivo respetando MaxSize y detecta su tipo por contenido; el
// Content-Type declarado por el cliente no se usa.
func Validate(file usecase.UploadFile, opts usecase.UploadOptions) ([]byte, string, error) {
	if file.Content == nil {
		return nil, "", domain.Invalid("file", "requerido")
	}
	if opts.MaxSize > 0 && file.Size > opts.MaxSize {
		return nil, "", domain.Invalid("file", fmt.Sprintf("excede %d bytes", opts.MaxSize))
	}
	r := file.Content
	if opts.MaxSize > 0 {
		r = io.LimitReader(r, opts.MaxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("storage: leer archivo: %w", err)
	}
	if len(data) == 0 {
		return nil, "", domain.Invalid("file", "vacío")
	}
	if opts.MaxSize > 0 && int64(len(data)) > opts.MaxSize {
		return nil, "", domain.Invalid("file", fmt.Sprintf("excede %d bytes", opts.MaxSize))
	}
	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if len(opts.AllowedTypes) > 0 && !slices.Contains(opts.AllowedTypes, contentType) {
		return nil, "", domain.Invalid("file", "tipo "+contentType+" no permitido")
	}
	return data, contentType, nil
}
