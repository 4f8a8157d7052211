package handlers

import "github.com/gofiber/fiber/v2"

// IndexHandler describes the API at GET /.
type IndexHandler struct {
	serviceName string
	version     string
}

// NewIndexHandler constructs handler.
func NewIndexHandler(serviceName, version string) *IndexHandler {
	return &IndexHandler{serviceName: serviceName, version: version}
}

// Index lists the resource roots.
func (h *IndexHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "project management API",
		"service": h.serviceName,
		"version": h.version,
		"endpoints": fiber.Map{
			"auth":     "/auth",
			"users":    "/users",
			"projects": "/projects",
			"tasks":    "/tasks",
			"health":   "/health/live",
		},
	})
}
