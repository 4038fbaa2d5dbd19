package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// AppConfig holds the HTTP-level settings of the fiber app.
type AppConfig struct {
	AppName     string
	BodyLimit   int    // bytes; must exceed the upload cap to leave room for multipart framing
	CORSOrigins string // comma separated, "*" for any
	AccessLog   bool
}

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(cfg AppConfig, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
			Output: log.Writer(),
		}))
	}

	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		// Browsers refuse credentials with a wildcard origin.
		AllowCredentials: origins != "*",
	}))

	return app
}

// errorHandler answers framework errors (404 routes, body too large,
// recovered panics) with the same {"error": ...} shape as the handlers.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
