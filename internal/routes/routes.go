package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/handlers"
	"github.com/Ananth-NQI/portfolio-backend/internal/middleware"
	"github.com/Ananth-NQI/portfolio-backend/internal/services"
)

// Dependencies are the services the routes are served from.
type Dependencies struct {
	Content   *services.ContentService
	Portfolio *services.PortfolioService
	Messaging *services.MessagingService
	Auth      *services.AuthService
	Uploads   *services.UploadService
	DB        handlers.Pinger
	Log       logrus.FieldLogger

	Version      string
	StorageName  string
	SecureCookie bool

	// RateLimitMax requests per RateLimitWindow per IP on the public write
	// endpoints. Zero disables limiting.
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Log

	contentHandler := handlers.NewContentHandler(deps.Content, log)
	portfolioHandler := handlers.NewPortfolioHandler(deps.Portfolio, log)
	messageHandler := handlers.NewMessageHandler(deps.Messaging, log)
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.SecureCookie, log)
	uploadHandler := handlers.NewUploadHandler(deps.Uploads, log)
	healthHandler := handlers.NewHealthHandler(deps.Version, deps.StorageName, deps.DB, log)

	limit := func() fiber.Handler {
		return rateLimiter(deps.RateLimitMax, deps.RateLimitWindow)
	}
	admin := middleware.RequireAdmin(deps.Auth, log)

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Portfolio Backend!",
			"version": deps.Version,
			"endpoints": fiber.Map{
				"health":  "/health",
				"api":     "/api",
				"uploads": services.UploadURLPrefix,
			},
		})
	})

	app.Get("/health", healthHandler.Check)

	// Uploaded files are public
	app.Static(services.UploadURLPrefix, deps.Uploads.Dir(), fiber.Static{
		MaxAge: 3600,
	})

	api := app.Group("/api")

	// ========== PUBLIC CONTENT ==========
	api.Get("/profile", contentHandler.GetProfile)
	api.Get("/about", contentHandler.GetAbout)
	api.Get("/contact", contentHandler.GetContact)
	api.Get("/projects", portfolioHandler.ListProjects)
	api.Get("/projects/:id/images", portfolioHandler.ListProjectImages)
	api.Get("/work", portfolioHandler.ListWork)
	api.Get("/work/:id/images", portfolioHandler.ListWorkImages)

	api.Post("/messages", limit(), messageHandler.Submit)
	api.Post("/upload", limit(), uploadHandler.Upload)

	// ========== AUTH ==========
	auth := api.Group("/auth")
	auth.Post("/login", limit(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/forgot-password", limit(), authHandler.ForgotPassword)
	auth.Post("/reset-password", limit(), authHandler.ResetPassword)
	auth.Put("/change-password", admin, authHandler.ChangePassword)
	auth.Get("/me", admin, authHandler.Me)

	// ========== ADMIN CONTENT ==========
	api.Put("/profile", admin, contentHandler.UpdateProfile)
	api.Put("/profile/images", admin, contentHandler.AddProfileImage)
	api.Put("/about", admin, contentHandler.UpdateAbout)
	api.Put("/contact", admin, contentHandler.UpdateContact)

	api.Post("/projects", admin, portfolioHandler.CreateProject)
	api.Put("/projects/:id", admin, portfolioHandler.UpdateProject)
	api.Delete("/projects/:id", admin, portfolioHandler.DeleteProject)
	api.Post("/projects/:id/images", admin, portfolioHandler.CreateProjectImage)
	api.Delete("/projects/:id/images/:imageId", admin, portfolioHandler.DeleteProjectImage)

	api.Post("/work", admin, portfolioHandler.CreateWork)
	api.Put("/work/:id", admin, portfolioHandler.UpdateWork)
	api.Delete("/work/:id", admin, portfolioHandler.DeleteWork)
	api.Post("/work/:id/images", admin, portfolioHandler.CreateWorkImage)
	api.Delete("/work/:id/images/:imageId", admin, portfolioHandler.DeleteWorkImage)

	// ========== ADMIN INBOX ==========
	// Grouped middleware would also cover the public POST /messages, so each
	// admin route carries the guard itself.
	messages := api.Group("/messages")
	messages.Get("/", admin, messageHandler.List)
	messages.Get("/stats", admin, messageHandler.Stats)
	messages.Get("/:id", admin, messageHandler.Get)
	messages.Put("/:id", admin, messageHandler.Update)
	messages.Delete("/:id", admin, messageHandler.Delete)
	messages.Post("/:id/read", admin, messageHandler.MarkRead)
	messages.Post("/:id/reply", admin, messageHandler.Reply)

	autoReply := api.Group("/auto-reply")
	autoReply.Get("/", admin, messageHandler.ListTemplates)
	autoReply.Post("/", admin, messageHandler.SaveTemplate)
	autoReply.Delete("/:id", admin, messageHandler.DeleteTemplate)

	settings := api.Group("/message-settings")
	settings.Get("/", admin, messageHandler.GetSettings)
	settings.Post("/", admin, messageHandler.UpdateSettings)
	settings.Put("/", admin, messageHandler.UpdateSettings)
}

func rateLimiter(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		},
	})
}
