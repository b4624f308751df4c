package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/romeo-folie/Todo-api/internal/auth/domain"
)

// Locals keys for the identity attached by RequireAuth. Set once per
// request, never mutated afterwards.
const (
	localsUserKey  = "auth.user"
	localsTokenKey = "auth.token"
)

// UserFromContext returns the user attached by RequireAuth, or nil when the
// route is not behind the middleware.
func UserFromContext(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(localsUserKey).(*domain.User)
	return user
}

// TokenFromContext returns the raw token string the request authenticated
// with.
func TokenFromContext(c *fiber.Ctx) string {
	token, _ := c.Locals(localsTokenKey).(string)
	return token
}

// RequireAuth resolves the x-auth header to a user or short-circuits with
// 401. The three rejection causes (missing header, bad signature, revoked
// token) are logged separately but answered identically.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	token := c.Get(HeaderAuthToken)
	if token == "" {
		logrus.WithField("path", c.Path()).Debug("auth: missing token header")
		return unauthorized(c)
	}

	claims, err := h.tokenVerifier.VerifyStructure(token)
	if err != nil {
		logrus.WithField("path", c.Path()).WithError(err).Debug("auth: structural verification failed")
		return unauthorized(c)
	}

	user, err := h.userService.GetByActiveToken(c.UserContext(), token)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"path":    c.Path(),
			"user_id": claims.UserID,
		}).Debug("auth: token not in active set")
		return unauthorized(c)
	}

	c.Locals(localsUserKey, user)
	c.Locals(localsTokenKey, token)

	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}
