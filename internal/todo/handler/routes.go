package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *TodoHandler) {
	app.Post("/todos", h.Create)
	app.Get("/todos", h.List)
	app.Get("/todos/:id", h.Get)
	app.Patch("/todos/:id", h.Update)
	app.Delete("/todos/:id", h.Delete)
}
