package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/internal/application/usecase"
	"github.com/jhoicas/Holding-api/internal/domain"
	"github.com/jhoicas/Holding-api/pkg/config"
)

// pngHeader basta para que http.DetectContentType devuelva image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(in.Body)
	f.body = buf.Bytes()
	return &s3.PutObjectOutput{}, f.err
}

var logoOpts = usecase.UploadOptions{MaxSize: 64, AllowedTypes: []string{"image/png", "image/jpeg"}}

func TestValidate(t *testing.T) {
	t.Run("png permitido", func(t *testing.T) {
		data, ct, err := Validate(usecase.UploadFile{Content: bytes.NewReader(pngHeader)}, logoOpts)
		require.NoError(t, err)
		assert.Equal(t, "image/png", ct)
		assert.Equal(t, pngHeader, data)
	})
	t.Run("tipo por contenido, no por cabecera", func(t *testing.T) {
		file := usecase.UploadFile{Content: strings.NewReader("hola"), ContentType: "image/png"}
		_, _, err := Validate(file, logoOpts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
	t.Run("tamaño declarado excedido", func(t *testing.T) {
		_, _, err := Validate(usecase.UploadFile{Size: 65, Content: bytes.NewReader(pngHeader)}, logoOpts)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
	t.Run("tamaño real excedido", func(t *testing.T) {
		big := append(append([]byte{}, pngHeader...), make([]byte, 100)...)
		_, _, err := Validate(usecase.UploadFile{Content: bytes.NewReader(big)}, logoOpts)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
	t.Run("vacío", func(t *testing.T) {
		_, _, err := Validate(usecase.UploadFile{Content: bytes.NewReader(nil)}, logoOpts)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestS3Uploader_Upload(t *testing.T) {
	putter := &fakePutter{}
	u := &S3Uploader{client: putter, bucket: "logos", baseURL: "https://cdn.example.com"}

	url, err := u.Upload(context.Background(), usecase.UploadFile{
		Key:     "firms/f1/logo-1.png",
		Content: bytes.NewReader(pngHeader),
	}, logoOpts)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/firms/f1/logo-1.png", url)
	assert.Equal(t, "logos", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, pngHeader, putter.body)
}

func TestS3Uploader_UploadError(t *testing.T) {
	u := &S3Uploader{client: &fakePutter{err: errors.New("timeout")}, bucket: "logos", baseURL: "x"}
	_, err := u.Upload(context.Background(), usecase.UploadFile{Key: "k.png", Content: bytes.NewReader(pngHeader)}, logoOpts)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com",
		publicBaseURL(config.StorageConfig{PublicBaseURL: "https://cdn.example.com/", Bucket: "b"}))
	assert.Equal(t, "http://localhost:9000/b",
		publicBaseURL(config.StorageConfig{Endpoint: "http://localhost:9000", Bucket: "b"}))
	assert.Equal(t, "https://b.s3.us-east-1.amazonaws.com",
		publicBaseURL(config.StorageConfig{Bucket: "b", Region: "us-east-1"}))
}
