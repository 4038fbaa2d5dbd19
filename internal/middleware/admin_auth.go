package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_session"

const adminIDKey = "adminID"

// SessionAuthenticator resolves a session token to an admin id.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (uint, error)
}

// RequireAdmin rejects requests without a valid admin session cookie.
func RequireAdmin(auth SessionAuthenticator, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		adminID, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			var authErr *services.AuthError
			if errors.As(err, &authErr) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": authErr.Message,
				})
			}
			log.WithError(err).Error("Session lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}

		c.Locals(adminIDKey, adminID)
		return c.Next()
	}
}

// AdminID returns the id stored by RequireAdmin, or 0 outside admin routes.
func AdminID(c *fiber.Ctx) uint {
	id, _ := c.Locals(adminIDKey).(uint)
	return id
}

// SessionToken returns the caller's session cookie value.
func SessionToken(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}
