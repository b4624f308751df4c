package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
	"github.com/romeo-folie/Todo-api/internal/auth/dto"
	"github.com/romeo-folie/Todo-api/internal/auth/service"
)

// HeaderAuthToken carries the opaque token in both directions: set on the
// register/login response, read back on auth-required requests.
const HeaderAuthToken = "x-auth"

type AuthHandler struct {
	userService   *service.UserService
	tokenVerifier service.TokenVerifier
}

func NewAuthHandler(userService *service.UserService, tokenVerifier service.TokenVerifier) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		tokenVerifier: tokenVerifier,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, token, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(HeaderAuthToken, token)
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, token, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		// Nothing beyond "invalid credentials" leaks, whatever the cause.
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": apperrors.ErrInvalidCredentials.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "login failed",
		})
	}

	c.Set(HeaderAuthToken, token)
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

// Me returns the authenticated user's public view. RequireAuth has already
// resolved the identity.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := UserFromContext(c)
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

// Logout revokes the exact token used to authenticate this request. Other
// sessions of the same user stay logged in.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := UserFromContext(c)
	token := TokenFromContext(c)

	if err := h.userService.Logout(c.UserContext(), user.ID, token); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "logout failed",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
