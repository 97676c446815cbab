package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewMetricsMiddleware(DefaultMetricsConfig()).Handler())
	app.Post("/circle", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"area": 3.14})
	})
	app.Get("/metrics", MetricsHandler())

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/circle", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `shapecalc_http_requests_total{method="POST",path="/circle",status="200"}`)
	assert.Contains(t, text, `path="unmatched",status="404"`)
	assert.NotContains(t, text, "does-not-exist")
}

func TestMetricsMiddleware_LabelsOutliveRequest(t *testing.T) {
	app := fiber.New()
	app.Use(NewMetricsMiddleware(DefaultMetricsConfig()).Handler())
	app.Post("/rectangle", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"area": 12, "perimeter": 14})
	})
	app.Get("/metrics", MetricsHandler())

	for _, method := range []string{http.MethodPut, http.MethodGet} {
		resp, err := app.Test(httptest.NewRequest(method, "/rectangle", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/rectangle", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `shapecalc_http_requests_total{method="PUT",path="unmatched",status="405"}`)
	assert.Contains(t, text, `shapecalc_http_requests_total{method="GET",path="unmatched",status="405"}`)
	assert.Contains(t, text, `shapecalc_http_requests_total{method="POST",path="/rectangle",status="200"}`)
}

func TestRoutePath(t *testing.T) {
	app := fiber.New()

	var got string
	app.Get("/pages/:name", func(c *fiber.Ctx) error {
		got = routePath(c, fiber.StatusOK)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/pages/circle", nil))
	require.NoError(t, err)
	assert.Equal(t, "/pages/:name", got)
}
