package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
)

func TestNewErrorResponse(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		body := NewErrorResponse(apperrors.MissingField("Length and width are required", "length", "width"))

		assert.Equal(t, "Length and width are required", body.Detail)
		assert.Equal(t, apperrors.CodeMissingField, body.Code)
		assert.Equal(t, []string{"length", "width"}, body.Fields)
	})

	t.Run("plain error", func(t *testing.T) {
		body := NewErrorResponse(errors.New("boom"))

		assert.Equal(t, "boom", body.Detail)
		assert.Equal(t, apperrors.CodeInternal, body.Code)
		assert.Empty(t, body.Fields)
	})
}

func newParseApp() *fiber.App {
	app := fiber.New()
	app.Post("/parse", func(c *fiber.Ctx) error {
		var req ShapeRequest
		if err := ParseBody(c, &req); err != nil {
			return WriteError(c, err)
		}
		return c.JSON(req.ToInput())
	})
	return app
}

func TestParseBody(t *testing.T) {
	app := newParseApp()

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"radius": 2.5}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, map[string]float64{"radius": 2.5}, out)
	})

	t.Run("form body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("length=3&width=4"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, map[string]float64{"length": 3, "width": 4}, out)
	})

	t.Run("empty body decodes to empty record", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"radius": "two"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, apperrors.CodeBadRequest, body.Code)
		assert.True(t, strings.HasPrefix(body.Detail, "Invalid request body: "))
	})

	t.Run("missing content type decodes as json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"radius": 2}`))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, map[string]float64{"radius": 2}, out)
	})

	t.Run("number beyond float64 is an invalid field", func(t *testing.T) {
		for _, body := range []string{`{"radius": 1e400}`, `{"width": -1e400}`} {
			req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

			var out ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, apperrors.CodeInvalidField, out.Code, body)
			assert.Len(t, out.Fields, 1)
			assert.Contains(t, out.Detail, "must be a finite number greater than zero")
		}
	})
}
