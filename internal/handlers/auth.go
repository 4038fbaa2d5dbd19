package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/middleware"
	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

// AuthHandler handles admin login, logout and password management.
type AuthHandler struct {
	auth         *services.AuthService
	secureCookie bool
	log          logrus.FieldLogger
}

// NewAuthHandler creates the handler. secureCookie marks the session cookie
// Secure and should be on in production.
func NewAuthHandler(auth *services.AuthService, secureCookie bool, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie, log: log}
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, value string, maxAge time.Duration, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setSessionCookie(c, session.Token, h.auth.Sessions().TTL(), session.ExpiresAt)
	return c.JSON(fiber.Map{
		"success": true,
		"id":      session.AdminID,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), middleware.SessionToken(c)); err != nil {
		return respondError(c, h.log, err)
	}

	// An Expires in the past clears the cookie.
	h.setSessionCookie(c, "", 0, time.Unix(0, 0))
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, err := h.auth.Me(c.UserContext(), middleware.AdminID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(admin)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req services.ChangePasswordInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	err := h.auth.ChangePassword(c.UserContext(), middleware.AdminID(c), middleware.SessionToken(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully."})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := h.auth.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": services.ResetRequestedMessage})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req services.ResetPasswordInput
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := h.auth.ResetPassword(c.UserContext(), req); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Password reset successfully. You can now log in with your new password.",
	})
}
