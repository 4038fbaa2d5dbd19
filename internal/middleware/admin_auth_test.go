package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/portfolio-backend/internal/logger"
	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

type stubAuth map[string]uint

func (s stubAuth) Authenticate(_ context.Context, token string) (uint, error) {
	if token == "boom" {
		return 0, errors.New("database is locked")
	}
	id, ok := s[token]
	if !ok {
		return 0, &services.AuthError{Message: "Not authenticated"}
	}
	return id, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", RequireAdmin(stubAuth{"good": 7}, logger.Discard()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"adminId": AdminID(c), "token": SessionToken(c)})
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name   string
		cookie string
		status int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"unknown token", "bad", http.StatusUnauthorized},
		{"store failure", "boom", http.StatusInternalServerError},
		{"valid session", "good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			if tc.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, `{"adminId":7,"token":"good"}`, string(body))
			}
		})
	}
}
