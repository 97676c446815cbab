package handler

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// welcomeEndpoints is listed by GET / when no index page is deployed
var welcomeEndpoints = []string{"/health", "/circle", "/rectangle", "/triangle"}

// PagesHandler serves the static HTML frontend
type PagesHandler struct {
	frontendPath string
}

// NewPagesHandler creates a new pages handler rooted at frontendPath
func NewPagesHandler(frontendPath string) *PagesHandler {
	return &PagesHandler{
		frontendPath: frontendPath,
	}
}

// RegisterRoutes registers page routes and mounts /static when the
// frontend ships a static directory
func (h *PagesHandler) RegisterRoutes(app *fiber.App) {
	if staticPath := filepath.Join(h.frontendPath, "static"); isDir(staticPath) {
		app.Static("/static", staticPath)
	}

	app.Get("/", h.Index)
	app.Get("/circle-page", h.page("circle.html", "Circle page not found"))
	app.Get("/rectangle-page", h.page("rectangle.html", "Rectangle page not found"))
	app.Get("/triangle-page", h.page("triangle.html", "Triangle page not found"))
}

// Index handles GET /
func (h *PagesHandler) Index(c *fiber.Ctx) error {
	indexPath := filepath.Join(h.frontendPath, "index.html")
	if isFile(indexPath) {
		return c.SendFile(indexPath)
	}

	return c.JSON(fiber.Map{
		"message":             "Welcome to Shapes Calculator API",
		"available_endpoints": welcomeEndpoints,
	})
}

// page serves name from the frontend directory, or a JSON notice when it is absent
func (h *PagesHandler) page(name, notFound string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := filepath.Join(h.frontendPath, name)
		if isFile(path) {
			return c.SendFile(path)
		}
		return c.JSON(fiber.Map{
			"error": notFound,
		})
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
