package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/pkg/config"
)

func TestLoad_RequiereJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_EnvYDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOGO_ALLOWED_TYPES", "image/png, image/svg+xml")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, []string{"image/png", "image/svg+xml"}, cfg.Storage.AllowedTypes)
	assert.Equal(t, "@hourly", cfg.Jobs.ContractExpiry)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.Storage.Enabled())
}

func TestDSN_EscapaCredenciales(t *testing.T) {
	c := config.DBConfig{User: "app", Password: "p@ss:word", Host: "db", Port: 5432, DBName: "holding", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/holding?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
