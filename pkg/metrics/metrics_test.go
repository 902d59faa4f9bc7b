package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Holding-api/pkg/metrics"
)

func TestMiddleware_CuentaPeticiones(t *testing.T) {
	m := metrics.New("holding-test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/ping",service="holding-test",status="200"} 3`)
}

func TestRecordDenial(t *testing.T) {
	m := metrics.New("holding-test")
	m.RecordDenial("FORBIDDEN")
	m.RecordDenial("FORBIDDEN")
	m.RecordDenial("MODULE_DISABLED")

	n, err := testutil.GatherAndCount(m.Registry(), "authorization_denials_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por motivo")
}
