package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"

	"github.com/shapecalc/shapecalc/docs"
)

// DocsHandler handles API documentation endpoints
type DocsHandler struct {
	specJSON []byte
}

// NewDocsHandler creates a new docs handler. The embedded OpenAPI document is
// converted to JSON once, so a malformed document fails at startup.
func NewDocsHandler() (*DocsHandler, error) {
	specJSON, err := openAPIToJSON(docs.OpenAPISpec)
	if err != nil {
		return nil, err
	}
	return &DocsHandler{specJSON: specJSON}, nil
}

// RegisterRoutes registers documentation routes
func (h *DocsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/openapi.yaml", h.ServeOpenAPISpec)
	app.Get("/openapi.json", h.ServeOpenAPIJSON)
	app.Get("/docs", h.ServeSwaggerUI)
}

// ServeOpenAPISpec serves the OpenAPI YAML specification
func (h *DocsHandler) ServeOpenAPISpec(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/x-yaml")
	return c.Send(docs.OpenAPISpec)
}

// ServeOpenAPIJSON serves the OpenAPI specification as JSON
func (h *DocsHandler) ServeOpenAPIJSON(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(h.specJSON)
}

// ServeSwaggerUI serves the Swagger UI HTML page
func (h *DocsHandler) ServeSwaggerUI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(swaggerUIPage)
}

func openAPIToJSON(spec []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return out, nil
}

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Shapes Calculator API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
    <style>
        body { margin: 0; background: #fafafa; }
        .swagger-ui .topbar { display: none; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "/openapi.yaml",
                dom_id: '#swagger-ui',
                deepLinking: true,
                displayRequestDuration: true
            });
        };
    </script>
</body>
</html>`
