package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	Version string
	Storage string
	db      Pinger
	log     logrus.FieldLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, storage string, db Pinger, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{
		Version: version,
		Storage: storage,
		db:      db,
		log:     log,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.WithError(err).Warn("Health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"service":  "Portfolio Backend",
			"version":  h.Version,
			"database": "unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"service":  "Portfolio Backend",
		"version":  h.Version,
		"storage":  h.Storage,
		"database": "ok",
	})
}
