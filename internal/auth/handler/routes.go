package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/users", h.Register)
	app.Post("/users/login", h.Login)

	app.Get("/users/me", h.RequireAuth, h.Me)
	app.Delete("/users/me/token", h.RequireAuth, h.Logout)
}
